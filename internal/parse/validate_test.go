package parse

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
)

var _ = Describe("ValidateInvoice", func() {
	var inv entity.ExtractedInvoice

	BeforeEach(func() {
		inv = entity.ExtractedInvoice{
			Supplier:      "Acme Pty Ltd",
			InvoiceNumber: "INV-1023",
			InvoiceDate:   "2024-01-15",
			TotalAmount:   110.00,
			GSTAmount:     10.00,
			NetAmount:     100.00,
			RawText:       "Total: $110.00",
		}
	})

	It("accepts a well-formed record", func() {
		Expect(ValidateInvoice(inv)).To(Succeed())
	})

	It("accepts the all-defaults record", func() {
		Expect(ValidateInvoice(entity.ExtractedInvoice{InvoiceDate: "2024-03-31"})).To(Succeed())
	})

	It("rejects negative amounts", func() {
		inv.TotalAmount = -5
		err := ValidateInvoice(inv)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, common.ErrValidation)).To(BeTrue())
	})

	It("rejects a date that is not YYYY-MM-DD", func() {
		inv.InvoiceDate = "15/01/2024"
		err := ValidateInvoice(inv)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, common.ErrValidation)).To(BeTrue())
	})

	It("accepts every record the parser emits", func() {
		parser := NewParser(Config{}, nil)
		for _, text := range []string{fullInvoiceText, "Total: $9.90", ""} {
			Expect(ValidateInvoice(parser.ParseInvoice(text))).To(Succeed())
		}
	})
})
