package ocr

import (
	"context"
	"errors"
	"image"
	"os"
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerline/gst-helper/internal/common"
)

// fakeRunner records the command it was asked to run and returns canned output.
type fakeRunner struct {
	calls int
	name  string
	args  []string
	// pageExisted reports whether the page image was on disk when the
	// command ran; the engine removes its temp dir afterwards.
	pageExisted bool

	stdout []byte
	stderr []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls++
	f.name = name
	f.args = args
	if len(args) > 0 {
		if _, err := os.Stat(args[0]); err == nil {
			f.pageExisted = true
		}
	}
	return f.stdout, f.stderr, f.err
}

var _ = Describe("TesseractEngine", func() {
	var (
		runner *fakeRunner
		page   image.Image
	)

	BeforeEach(func() {
		runner = &fakeRunner{}
		page = image.NewRGBA(image.Rect(0, 0, 8, 8))
	})

	It("invokes tesseract on a rendered page with the default settings", func() {
		engine := NewTesseractEngine(TesseractConfig{}, runner, nil)

		text, err := engine.RecognizePage(context.Background(), page)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())

		Expect(runner.calls).To(Equal(1))
		Expect(runner.name).To(Equal("tesseract"))
		Expect(runner.args).To(HaveLen(4))
		Expect(runner.args[0]).To(HaveSuffix("page.png"))
		Expect(runner.args[1]).To(Equal("stdout"))
		Expect(runner.args[2:4]).To(Equal([]string{"-l", "eng"}))
		Expect(runner.pageExisted).To(BeTrue())
	})

	It("passes language, page segmentation, engine mode and tessdata options through", func() {
		engine := NewTesseractEngine(TesseractConfig{
			Bin:         "/opt/tesseract/bin/tesseract",
			Language:    "deu",
			TessdataDir: "/opt/tessdata",
			PSM:         6,
			OEM:         1,
		}, runner, nil)

		_, err := engine.RecognizePage(context.Background(), page)
		Expect(err).NotTo(HaveOccurred())

		Expect(runner.name).To(Equal("/opt/tesseract/bin/tesseract"))
		Expect(runner.args[1:]).To(Equal([]string{
			"stdout", "-l", "deu", "--psm", "6", "--oem", "1", "--tessdata-dir", "/opt/tessdata",
		}))
	})

	It("returns recognized text exactly as tesseract printed it", func() {
		runner.stdout = []byte(" Total: $42.00 \n")
		engine := NewTesseractEngine(TesseractConfig{}, runner, nil)

		text, err := engine.RecognizePage(context.Background(), page)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal(" Total: $42.00 \n"))
	})

	It("reports a missing binary as the engine being unavailable", func() {
		runner.err = exec.ErrNotFound
		engine := NewTesseractEngine(TesseractConfig{}, runner, nil)

		_, err := engine.RecognizePage(context.Background(), page)
		Expect(errors.Is(err, common.ErrEngineUnavailable)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("not found in PATH"))
		Expect(err.Error()).To(ContainSubstring(`"tesseract"`))
	})

	It("includes stderr in engine failures", func() {
		runner.err = errors.New("exit status 1")
		runner.stderr = []byte("Error: unsupported image depth")
		engine := NewTesseractEngine(TesseractConfig{}, runner, nil)

		_, err := engine.RecognizePage(context.Background(), page)
		Expect(errors.Is(err, common.ErrEngineUnavailable)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("unsupported image depth"))
	})

	It("reports cancellation as a context error, not an engine failure", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner.err = errors.New("signal: killed")
		engine := NewTesseractEngine(TesseractConfig{}, runner, nil)

		_, err := engine.RecognizePage(ctx, page)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(errors.Is(err, common.ErrEngineUnavailable)).To(BeFalse())
	})
})
