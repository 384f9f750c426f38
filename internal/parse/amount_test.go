package parse

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("findTotal", func() {
	It("picks the largest keyword-anchored amount", func() {
		v, matcher, ok := findTotal("Balance due: $20.00\nGrand Total: $80.00")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("keyword"))
		Expect(v).To(Equal(80.00))
	})

	It("matches the amount-before-keyword form", func() {
		v, _, ok := findTotal("$99.00 total")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(99.00))
	})

	It("prefers keyword-anchored amounts over larger bare ones", func() {
		v, matcher, ok := findTotal("Total: $100.00\nInsured value: $1,000.00")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("keyword"))
		Expect(v).To(Equal(100.00))
	})

	It("does not let Subtotal anchor the total keyword", func() {
		v, _, ok := findTotal("Subtotal: $90.91\nTotal: $10.00")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(10.00))
	})

	It("falls back to the largest currency-marked number", func() {
		v, matcher, ok := findTotal("Qty 10000\n$45.90\n$100.00\n$12.00")
		Expect(ok).To(BeTrue())
		Expect(matcher).To(Equal("currency-fallback"))
		Expect(v).To(Equal(100.00))
	})

	It("accepts an AUD prefix before the amount", func() {
		v, _, ok := findTotal("Amount Payable: AUD $2,999.99")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2999.99))
	})

	It("reports no total when nothing matches", func() {
		_, _, ok := findTotal("no numbers of note")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("findGST", func() {
	It("returns the first GST figure in reading order", func() {
		v, ok := findGST("GST: $5.00\nGST component: $6.00", 100)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(5.00))
	})

	It("skips candidates anchored on a Tax Invoice header", func() {
		v, ok := findGST("Tax Invoice Total $110.00\nGST $10.00", 110)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(10.00))
	})

	It("skips candidates at or above the total", func() {
		_, ok := findGST("GST: $110.00", 110)
		Expect(ok).To(BeFalse())
	})

	It("ignores percentages", func() {
		_, ok := findGST("GST: 10.00%", 110)
		Expect(ok).To(BeFalse())
	})

	It("matches the amount-before-keyword form", func() {
		v, ok := findGST("$4.20 GST", 46.20)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(4.20))
	})
})
