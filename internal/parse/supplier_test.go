package parse

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("findSupplier", func() {
	It("prefers an explicit label", func() {
		name, matcher := findSupplier("From: Bunnings Warehouse\nTotal: $45.00")
		Expect(name).To(Equal("Bunnings Warehouse"))
		Expect(matcher).To(Equal("labeled"))
	})

	It("falls through a labeled value that looks like furniture", func() {
		name, matcher := findSupplier("From: Tax Invoice\nOfficeworks Ltd\nTotal: $12.00")
		Expect(name).To(Equal("Officeworks Ltd"))
		Expect(matcher).To(Equal("company-suffix"))
	})

	It("finds a company-suffix line in the top block", func() {
		name, matcher := findSupplier("Tax Invoice\nAcme Hardware Pty Ltd\n123 Example St")
		Expect(name).To(Equal("Acme Hardware Pty Ltd"))
		Expect(matcher).To(Equal("company-suffix"))
	})

	It("falls back to the first clean top-block line", func() {
		name, matcher := findSupplier("Joe's Coffee Cart\n12 Bean Lane\nThanks for visiting")
		Expect(name).To(Equal("Joe's Coffee Cart"))
		Expect(matcher).To(Equal("top-block"))
	})

	It("returns empty when every top line is furniture", func() {
		name, _ := findSupplier("Tax Invoice\nDate: 01/02/2024\nTotal: $10.00")
		Expect(name).To(BeEmpty())
	})
})

var _ = Describe("rejectSupplier", func() {
	It("rejects document headers", func() {
		Expect(rejectSupplier("TAX INVOICE")).To(BeTrue())
		Expect(rejectSupplier("Receipt")).To(BeTrue())
	})

	It("rejects label and amount noise", func() {
		Expect(rejectSupplier("Total Amount Due")).To(BeTrue())
		Expect(rejectSupplier("Widgets $45.00")).To(BeTrue())
	})

	It("rejects contact lines", func() {
		Expect(rejectSupplier("www.acme.com.au")).To(BeTrue())
		Expect(rejectSupplier("accounts@acme.com.au")).To(BeTrue())
		Expect(rejectSupplier("Phone 02 9999 0000")).To(BeTrue())
	})

	It("rejects registration numbers", func() {
		Expect(rejectSupplier("ABN 51 824 753 556")).To(BeTrue())
	})

	It("rejects dates and too-short lines", func() {
		Expect(rejectSupplier("01/02/2024")).To(BeTrue())
		Expect(rejectSupplier("ok")).To(BeTrue())
	})

	It("keeps ordinary business names", func() {
		Expect(rejectSupplier("Acme Hardware Pty Ltd")).To(BeFalse())
		Expect(rejectSupplier("Joe's Coffee Cart")).To(BeFalse())
	})
})
