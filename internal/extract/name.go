package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// nameStrategy is one named rule in the extraction cascade. reject carries
// strategy-specific stopwords for rules whose lazy capture can swallow
// narrative verbs.
type nameStrategy struct {
	name    string
	pattern *regexp.Regexp
	reject  []string
}

// akaSuffix trims alias fragments appended to a captured name
var akaSuffix = regexp.MustCompile(`(?i)\s+(?:aka|also\s+known\s+as)\s+.*$`)

// NameExtractor extracts victim names from case text. Strategies are ordered
// most-specific to most-permissive; the first whose capture passes the
// validity filter wins and later strategies are not tried. An invalid capture
// falls through to the next strategy.
type NameExtractor struct {
	strategies []nameStrategy
	blocklist  []string
	minLen     int
}

// NewNameExtractor creates a name extractor with the standard cascade
func NewNameExtractor() *NameExtractor {
	strategies := []nameStrategy{
		{
			name: "identified-as",
			pattern: regexp.MustCompile(
				`(?i)(?:victim\s+was\s+)?(?:later\s+)?identified\s+as\s+([A-Za-z\s'-]+?)(?:\s*,\s*\d+|\s*,\s*age|\s*,\s*and|\s*\.|$)`),
		},
		{
			name: "body-of",
			pattern: regexp.MustCompile(
				`(?i)(?:the\s+)?body\s+of\s+([A-Za-z\s'-]+?)(?:\s*,|\s+was|\s+had|\s*\.|$)`),
		},
		{
			name: "victim-named",
			pattern: regexp.MustCompile(
				`(?i)victim\s+([A-Za-z\s'-]+?)(?:\s*,|\s+was|\s+had|\s+died|\s+suffered|\s*\.|$)`),
			reject: []string{"later", "was", "had", "been"},
		},
		{
			name: "leading-caps",
			pattern: regexp.MustCompile(
				`^([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
		},
	}

	// Generic and structural words that disqualify a candidate. Month names
	// are included because blocks start with their date marker; days of week
	// are deliberately absent.
	blocklist := []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"boston", "police", "department", "street", "avenue", "responded",
		"person", "shot", "victim", "homicide", "murder", "killed",
		"man", "woman", "body", "unknown",
	}

	return &NameExtractor{
		strategies: strategies,
		blocklist:  blocklist,
		minLen:     2,
	}
}

// Extract returns the victim name in title case with whitespace collapsed,
// or the Unknown sentinel when no strategy produces a valid candidate.
func (e *NameExtractor) Extract(text string) string {
	for _, strat := range e.strategies {
		m := strat.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := akaSuffix.ReplaceAllString(strings.TrimSpace(m[1]), "")
		candidate = collapseWhitespace(candidate)
		if e.valid(candidate, strat.reject) {
			return titleCase(candidate)
		}
	}
	return model.UnknownName
}

// valid rejects candidates that are too short or contain a disqualifying word
func (e *NameExtractor) valid(candidate string, reject []string) bool {
	if len(candidate) < e.minLen {
		return false
	}
	lower := strings.ToLower(candidate)
	for _, word := range e.blocklist {
		if strings.Contains(lower, word) {
			return false
		}
	}
	for _, word := range reject {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// titleCase capitalizes the first letter of each word and lowercases the rest
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
