package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// amountCandidate is one currency token found in the text.
type amountCandidate struct {
	value float64
	pos   int
	end   int
}

var (
	// "Total ... $1,234.56" and "$1,234.56 total|due" keyword forms. The
	// currency marker is optional when the keyword anchors the line.
	reKeywordAmount = regexp.MustCompile(`(?i)\b(?:grand\s+total|total|amount\s+due|amount\s+payable|balance\s+due|balance|charged\s+to)\b[^\n]*?(?:aud\s*|a)?\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)
	// the trailing keyword must sit on the same line as the amount
	reAmountKeyword = regexp.MustCompile(`(?i)(?:aud[ \t]*|a)?\$[ \t]*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})[ \t]*(?:total|due)\b`)

	// bare currency-marked number, cents optional
	reCurrencyAmount = regexp.MustCompile(`(?i)(?:aud\s*|a)?\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(?:\.\d{2})?)`)

	// "GST ... $12.34" and "$12.34 GST" keyword forms
	reGSTAmount = regexp.MustCompile(`(?i)\b(?:gst|vat|tax)\b[^\n]*?(?:aud\s*|a)?\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)
	reAmountGST = regexp.MustCompile(`(?i)(?:aud[ \t]*|a)?\$[ \t]*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})[ \t]*(?:gst|vat|tax)\b`)
)

// findTotal picks the invoice total: the largest keyword-anchored candidate,
// falling back to the largest explicitly currency-marked number anywhere.
// Equal values resolve to the first occurrence in reading order.
func findTotal(text string) (float64, string, bool) {
	stages := []struct {
		name string
		res  []*regexp.Regexp
	}{
		{"keyword", []*regexp.Regexp{reKeywordAmount, reAmountKeyword}},
		{"currency-fallback", []*regexp.Regexp{reCurrencyAmount}},
	}
	for _, stage := range stages {
		var cands []amountCandidate
		for _, re := range stage.res {
			cands = append(cands, collectAmounts(re, text)...)
		}
		if len(cands) == 0 {
			continue
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })
		best := cands[0]
		for _, c := range cands[1:] {
			if c.value > best.value {
				best = c
			}
		}
		return best.value, stage.name, true
	}
	return 0, "", false
}

// findGST picks the first GST figure in reading order. Candidates from
// "Tax Invoice" headers and candidates not strictly below the total are
// misreads and skipped.
func findGST(text string, total float64) (float64, bool) {
	cands := append(collectAmounts(reGSTAmount, text), collectAmounts(reAmountGST, text)...)
	if len(cands) == 0 {
		return 0, false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })

	lower := strings.ToLower(text)
	for _, c := range cands {
		if strings.HasPrefix(lower[c.pos:], "tax invoice") {
			continue
		}
		if total > 0 && c.value >= total {
			continue
		}
		return c.value, true
	}
	return 0, false
}

func collectAmounts(re *regexp.Regexp, text string) []amountCandidate {
	var out []amountCandidate
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(m) < 4 || m[2] < 0 {
			continue
		}
		v, ok := parseMoney(text[m[2]:m[3]])
		if !ok {
			continue
		}
		if isPercent(text, m[3]) {
			continue
		}
		out = append(out, amountCandidate{value: v, pos: m[0], end: m[3]})
	}
	return out
}

// isPercent reports whether the amount ending at i is a percentage, not money.
func isPercent(text string, i int) bool {
	for i < len(text) && text[i] == ' ' {
		i++
	}
	return i < len(text) && text[i] == '%'
}

func parseMoney(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
