package parse

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("findInvoiceNumber", func() {
	It("reads a labeled number", func() {
		num, matcher, ok := findInvoiceNumber("Invoice No: INV-1023")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("labeled"))
		Expect(num).To(Equal("INV-1023"))
	})

	It("reads a hash-labeled number", func() {
		num, _, ok := findInvoiceNumber("Invoice #: 556677")
		Expect(ok).To(BeTrue())
		Expect(num).To(Equal("556677"))
	})

	It("reads a reference label", func() {
		num, _, ok := findInvoiceNumber("Reference: ABC-99")
		Expect(ok).To(BeTrue())
		Expect(num).To(Equal("ABC-99"))
	})

	It("falls back to a structured code", func() {
		num, matcher, ok := findInvoiceNumber("order confirmation PO-12345 attached")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("code"))
		Expect(num).To(Equal("PO-12345"))
	})

	It("reads digits straight after the keyword", func() {
		num, matcher, ok := findInvoiceNumber("INV 2024-118 issued")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("keyword-bare"))
		Expect(num).To(Equal("2024-118"))
	})

	It("does not treat the date label as a number label", func() {
		_, _, ok := findInvoiceNumber("Invoice Date: 15/01/2024")
		Expect(ok).To(BeFalse())
	})

	It("rejects a labeled value that is a date", func() {
		_, _, ok := findInvoiceNumber("Invoice No: 15/01/2024")
		Expect(ok).To(BeFalse())
	})

	It("rejects digit-free tokens", func() {
		_, _, ok := findInvoiceNumber("Invoice No: PENDING")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("plausibleInvoiceNumber", func() {
	It("enforces length bounds", func() {
		Expect(plausibleInvoiceNumber("7")).To(BeFalse())
		Expect(plausibleInvoiceNumber("A1")).To(BeTrue())
		Expect(plausibleInvoiceNumber("X123456789012345678901234")).To(BeFalse())
	})

	It("requires at least one digit", func() {
		Expect(plausibleInvoiceNumber("DRAFT")).To(BeFalse())
		Expect(plausibleInvoiceNumber("INV-7")).To(BeTrue())
	})

	It("rejects date tokens", func() {
		Expect(plausibleInvoiceNumber("15/01/2024")).To(BeFalse())
		Expect(plausibleInvoiceNumber("2024-01-15")).To(BeFalse())
	})
})
