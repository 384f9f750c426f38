package constants

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConstants(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Constants Suite")
}

var _ = Describe("Canonicalize", func() {
	It("accepts canonical category names", func() {
		cat, ok := Canonicalize("OfficeSupplies")
		Expect(ok).To(BeTrue())
		Expect(cat).To(Equal(OfficeSupplies))
	})

	It("ignores case and surrounding space", func() {
		cat, ok := Canonicalize("  travel ")
		Expect(ok).To(BeTrue())
		Expect(cat).To(Equal(Travel))

		cat, ok = Canonicalize("MOTORVEHICLE")
		Expect(ok).To(BeTrue())
		Expect(cat).To(Equal(MotorVehicle))
	})

	It("resolves everyday synonyms", func() {
		for input, want := range map[string]Category{
			"fuel":        MotorVehicle,
			"phone":       Telecommunications,
			"accounting":  ProfessionalServices,
			"saas":        Software,
			"uber":        Travel,
			"electricity": Utilities,
			"stationery":  OfficeSupplies,
		} {
			cat, ok := Canonicalize(input)
			Expect(ok).To(BeTrue(), "input %q", input)
			Expect(cat).To(Equal(want), "input %q", input)
		}
	})

	It("falls back to Other for unknown input", func() {
		cat, ok := Canonicalize("spaceship")
		Expect(ok).To(BeFalse())
		Expect(cat).To(Equal(Other))
	})

	It("falls back to Other for empty input", func() {
		cat, ok := Canonicalize("")
		Expect(ok).To(BeFalse())
		Expect(cat).To(Equal(Other))
	})
})

var _ = Describe("AsStringSlice", func() {
	It("lists every category once", func() {
		all := AsStringSlice()
		Expect(all).To(HaveLen(14))
		Expect(all[0]).To(Equal("Advertising"))
		Expect(all[len(all)-1]).To(Equal("Other"))
	})
})

var _ = Describe("content types", func() {
	Describe("NormalizeContentType", func() {
		It("lowercases and strips parameters", func() {
			Expect(NormalizeContentType("Application/PDF; charset=binary")).To(Equal("application/pdf"))
			Expect(NormalizeContentType(" image/PNG ")).To(Equal("image/png"))
		})
	})

	Describe("FormatForContentType", func() {
		It("maps PDF and image types to their format", func() {
			format, ok := FormatForContentType("application/pdf")
			Expect(ok).To(BeTrue())
			Expect(format).To(Equal(FormatPDF))

			for _, ct := range []string{"image/jpeg", "image/png", "image/tiff"} {
				format, ok := FormatForContentType(ct)
				Expect(ok).To(BeTrue(), "content type %q", ct)
				Expect(format).To(Equal(FormatImage), "content type %q", ct)
			}
		})

		It("tolerates parameters and case", func() {
			format, ok := FormatForContentType("Image/PNG; x=1")
			Expect(ok).To(BeTrue())
			Expect(format).To(Equal(FormatImage))
		})

		It("rejects everything else", func() {
			_, ok := FormatForContentType("application/msword")
			Expect(ok).To(BeFalse())
			_, ok = FormatForContentType("")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ContentTypeForExt", func() {
		It("maps known extensions with or without the dot", func() {
			ct, ok := ContentTypeForExt(".PDF")
			Expect(ok).To(BeTrue())
			Expect(ct).To(Equal("application/pdf"))

			ct, ok = ContentTypeForExt("jpeg")
			Expect(ok).To(BeTrue())
			Expect(ct).To(Equal("image/jpeg"))

			ct, ok = ContentTypeForExt(".tif")
			Expect(ok).To(BeTrue())
			Expect(ct).To(Equal("image/tiff"))
		})

		It("rejects unknown extensions", func() {
			_, ok := ContentTypeForExt(".docx")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("NormalizeExt", func() {
		It("lowercases and drops the leading dot", func() {
			Expect(NormalizeExt(".PDF")).To(Equal("pdf"))
			Expect(NormalizeExt("JPG")).To(Equal("jpg"))
		})
	})
})
