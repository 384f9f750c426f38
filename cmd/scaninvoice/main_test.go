package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScanInvoice(t *testing.T) {
	// Disable logging during tests
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	RegisterFailHandler(Fail)
	RunSpecs(t, "ScanInvoice Suite")
}

var _ = Describe("collectPaths", func() {
	var dir string

	touch := func(parts ...string) string {
		path := filepath.Join(append([]string{dir}, parts...)...)
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("returns a file argument as-is", func() {
		path := touch("invoice.pdf")
		paths, err := collectPaths(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(Equal([]string{path}))
	})

	It("does not filter a direct file argument by extension", func() {
		// unsupported content is rejected later, by the pipeline
		path := touch("notes.txt")
		paths, err := collectPaths(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(Equal([]string{path}))
	})

	It("collects only supported extensions under a directory", func() {
		pdf := touch("a.pdf")
		jpg := touch("b.jpg")
		tiff := touch("c.tiff")
		touch("notes.txt")
		touch("report.docx")

		paths, err := collectPaths(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(pdf, jpg, tiff))
	})

	It("matches extensions case-insensitively", func() {
		upper := touch("SCAN.PDF")
		mixed := touch("photo.Jpeg")

		paths, err := collectPaths(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(upper, mixed))
	})

	It("recurses into nested directories", func() {
		nested := touch("2024", "q1", "rent.pdf")

		paths, err := collectPaths(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(nested))
	})

	It("skips hidden files and hidden directories", func() {
		visible := touch("invoice.pdf")
		touch(".draft.pdf")
		touch(".cache", "cached.pdf")

		paths, err := collectPaths(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(visible))
	})

	It("still walks a hidden directory named as the root", func() {
		hiddenRoot := filepath.Join(dir, ".invoices")
		inside := touch(".invoices", "phone.pdf")

		paths, err := collectPaths(hiddenRoot)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(inside))
	})

	It("fails on a missing path", func() {
		_, err := collectPaths(filepath.Join(dir, "no-such-dir"))
		Expect(err).To(HaveOccurred())
	})
})
