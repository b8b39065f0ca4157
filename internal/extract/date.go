package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateExtractor extracts incident dates for a target year. Extract returns
// the raw matched substring; Display converts a raw match to the canonical
// "Month D, YYYY" form.
type DateExtractor struct {
	year     int
	patterns []*regexp.Regexp
}

// NewDateExtractor creates a date extractor anchored to the given year
func NewDateExtractor(year int) *DateExtractor {
	return &DateExtractor{
		year: year,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(fmt.Sprintf(`(?i)((?:%s)\s+\d{1,2},?\s+%d)`, MonthNames, year)),
			regexp.MustCompile(fmt.Sprintf(`(\d{1,2}/\d{1,2}/%d)`, year)),
			regexp.MustCompile(fmt.Sprintf(`(\d{1,2}-\d{1,2}-%d)`, year)),
		},
	}
}

// Extract returns the first date match in raw form, or "" when none is found
func (e *DateExtractor) Extract(text string) string {
	for _, p := range e.patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// Display normalizes a raw date match to "Month D, YYYY". A date without a
// year is assumed to fall in the target year. The second return is false
// when the input cannot be understood as a calendar date.
func (e *DateExtractor) Display(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	// numeric forms first
	for _, layout := range []string{"1/2/2006", "1-2-2006", "2006/1/2", "2006-1-2"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006"), true
		}
	}

	// month-name form: squash punctuation and parse as given
	cleaned := canonicalMonth(collapseWhitespace(strings.ReplaceAll(raw, ",", "")))
	if t, err := time.Parse("January 2 2006", cleaned); err == nil {
		return t.Format("January 2, 2006"), true
	}

	// no year in the match: assume the target year
	if !strings.Contains(raw, strconv.Itoa(e.year)) {
		if t, err := time.Parse("January 2 2006", cleaned+" "+strconv.Itoa(e.year)); err == nil {
			return t.Format("January 2, 2006"), true
		}
	}

	return "", false
}

var monthWord = regexp.MustCompile(`(?i)^(` + MonthNames + `)\b`)

// canonicalMonth fixes the case of a leading month name so parsing is not
// defeated by all-caps source text
func canonicalMonth(s string) string {
	return monthWord.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
	})
}
