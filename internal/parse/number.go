package parse

import (
	"regexp"
	"strings"
)

type numberMatcher struct {
	name string
	re   *regexp.Regexp
}

// Labeled references win over bare codes; a keyword followed directly by
// digits is the last resort.
var invoiceNumberMatchers = []numberMatcher{
	{"labeled", regexp.MustCompile(`(?i)\b(?:invoice|inv|reference|ref)\s*(?:no\.?|num(?:ber)?\.?|#|:)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-/]{0,30})`)},
	{"code", regexp.MustCompile(`\b([A-Z]{2,5}-[A-Za-z0-9\-/]{2,28})\b`)},
	{"keyword-bare", regexp.MustCompile(`(?i)\b(?:invoice|inv)\s+(\d[A-Za-z0-9\-/]{1,23})\b`)},
}

var reHasDigit = regexp.MustCompile(`\d`)

func findInvoiceNumber(text string) (string, string, bool) {
	for _, m := range invoiceNumberMatchers {
		for _, idx := range m.re.FindAllStringSubmatchIndex(text, -1) {
			cand := strings.TrimRight(text[idx[2]:idx[3]], "-/")
			if plausibleInvoiceNumber(cand) {
				return cand, m.name, true
			}
		}
	}
	return "", "", false
}

// plausibleInvoiceNumber rejects tokens no invoice number looks like: single
// characters, over-long runs, digit-free words and date tokens.
func plausibleInvoiceNumber(s string) bool {
	if len(s) < 2 || len(s) > 24 {
		return false
	}
	if !reHasDigit.MatchString(s) {
		return false
	}
	if _, ok := parseDateToken(s); ok {
		return false
	}
	return true
}
