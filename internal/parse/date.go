package parse

import (
	"regexp"
	"strings"
	"time"
)

type dateMatcher struct {
	name string
	re   *regexp.Regexp
}

// Ordered by confidence: labeled dates beat bare day-first tokens, which beat
// ISO and written forms, which beat two-digit years. Within a matcher the
// first parseable occurrence wins.
var dateMatchers = []dateMatcher{
	{"labeled", regexp.MustCompile(`(?i)\b(?:invoice\s+date|date\s+of\s+issue|issue\s+date|date)\s*[:\-]\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9}\.?\s+\d{4})`)},
	{"day-first", regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{4})\b`)},
	{"iso", regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)},
	{"written", regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9}\.?\s+\d{4})\b`)},
	{"short-year", regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2})\b`)},
}

var reOrdinal = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\b`)

// Day-first layouts come first: documents here are predominantly Australian.
// Month-first is a last resort for imported US invoices.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2006/01/02",
	"2 January 2006",
	"2 Jan 2006",
	"1/2/2006",
	"1/2/06",
}

func findDate(text string) (time.Time, string, bool) {
	for _, m := range dateMatchers {
		for _, idx := range m.re.FindAllStringSubmatchIndex(text, -1) {
			if t, ok := parseDateToken(text[idx[2]:idx[3]]); ok {
				return t, m.name, true
			}
		}
	}
	return time.Time{}, "", false
}

// parseDateToken parses one date token to a midnight-UTC date. Years outside
// 2000-2099 are treated as OCR misreads.
func parseDateToken(token string) (time.Time, bool) {
	s := strings.TrimSpace(token)
	s = reOrdinal.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "-", "/")
	s = strings.ReplaceAll(s, ".", "")
	s = collapseSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 2000 || t.Year() > 2099 {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
