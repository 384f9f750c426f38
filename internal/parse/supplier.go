package parse

import (
	"regexp"
	"strings"
)

// supplierScanLines bounds the top-of-document block searched for a supplier
// name.
const supplierScanLines = 10

var (
	reSupplierLabel = regexp.MustCompile(`(?im)^\s*(?:from|supplier|vendor|bill\s+from|invoice\s+from|billed\s+by|sold\s+by)\s*:\s*(\S[^\n]*)`)
	reCompanyLine   = regexp.MustCompile(`(?i)\b(?:pty\s*\.?\s*ltd|ltd|limited|inc|llc|corp(?:oration)?|co)\s*\.?\s*$`)

	reHeaderLine   = regexp.MustCompile(`(?i)^(?:tax\s+invoice|invoice|receipt|statement|bill|quote|estimate)\b`)
	reLabelNoise   = regexp.MustCompile(`(?i)\b(?:total|subtotal|amount|due|gst|vat|abn|acn|date|page|invoice|receipt|description|qty|quantity)\b`)
	reContactNoise = regexp.MustCompile(`(?i)@|www\.|https?://|\b(?:tel|phone|fax|mob|mobile|email)\b`)
	reDateNoise    = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}-\d{2}-\d{2}`)
	reAmountNoise  = regexp.MustCompile(`\$\s*\d|\d+\.\d{2}`)
)

// findSupplier resolves the supplier name: explicit labels first, then
// company-suffix lines in the top block, then the first top-block line that
// survives rejection. An empty result is preferred over a wrong one.
func findSupplier(text string) (string, string) {
	for _, idx := range reSupplierLabel.FindAllStringSubmatchIndex(text, -1) {
		cand := cleanSupplier(text[idx[2]:idx[3]])
		if cand != "" && !rejectSupplier(cand) {
			return cand, "labeled"
		}
	}

	top := topLines(text, supplierScanLines)
	for _, ln := range top {
		if reCompanyLine.MatchString(ln) && !rejectSupplier(ln) {
			return ln, "company-suffix"
		}
	}
	for _, ln := range top {
		if !rejectSupplier(ln) {
			return ln, "top-block"
		}
	}
	return "", ""
}

// rejectSupplier reports whether a candidate line looks like document
// furniture rather than a business name.
func rejectSupplier(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 || len(s) > 80 {
		return true
	}
	if reHeaderLine.MatchString(s) {
		return true
	}
	if reLabelNoise.MatchString(s) {
		return true
	}
	if reContactNoise.MatchString(s) {
		return true
	}
	if reDateNoise.MatchString(s) {
		return true
	}
	if reAmountNoise.MatchString(s) {
		return true
	}
	var digits, letters int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		}
	}
	return digits > letters
}

func topLines(text string, n int) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		cand := cleanSupplier(ln)
		if cand == "" {
			continue
		}
		out = append(out, cand)
		if len(out) == n {
			break
		}
	}
	return out
}

func cleanSupplier(s string) string {
	s = collapseSpace(s)
	return strings.Trim(s, " \t-:;,.|*_")
}
