package parse

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("findDate", func() {
	expectDate := func(text string, y int, m time.Month, d int) {
		GinkgoHelper()
		t, _, ok := findDate(text)
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)))
	}

	It("reads a labeled day-first date", func() {
		expectDate("Date: 15/01/2024", 2024, time.January, 15)
	})

	It("accepts a dash after the label", func() {
		expectDate("Invoice Date - 02/03/2024", 2024, time.March, 2)
	})

	It("resolves ambiguous numeric dates day-first", func() {
		expectDate("04/05/2024", 2024, time.May, 4)
	})

	It("falls back to month-first only when day-first cannot parse", func() {
		expectDate("01/25/2024", 2024, time.January, 25)
	})

	It("reads ISO dates", func() {
		expectDate("issued 2024-07-09 by the office", 2024, time.July, 9)
	})

	It("reads written dates with ordinals", func() {
		expectDate("3rd Mar 2024", 2024, time.March, 3)
		expectDate("15 January 2024", 2024, time.January, 15)
	})

	It("reads two-digit years in this century", func() {
		expectDate("Date: 31/12/24", 2024, time.December, 31)
	})

	It("rejects impossible day numbers", func() {
		_, _, ok := findDate("32/01/2024")
		Expect(ok).To(BeFalse())
	})

	It("rejects years outside 2000-2099", func() {
		_, _, ok := findDate("Date: 15/01/1024")
		Expect(ok).To(BeFalse())
	})

	It("reports no date on plain text", func() {
		_, _, ok := findDate("forty-two widgets")
		Expect(ok).To(BeFalse())
	})

	It("prefers the labeled date over an earlier bare one", func() {
		t, matcher, ok := findDate("paid 01/02/2024\nInvoice Date: 05/06/2024")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("labeled"))
		Expect(t).To(Equal(time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)))
	})
})
