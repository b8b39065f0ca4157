package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// AgeExtractor extracts victim ages from case text using a pattern cascade.
// Each pattern's first capture is parsed as an integer; an implausible value
// falls through to the next pattern rather than aborting the cascade.
type AgeExtractor struct {
	patterns []*regexp.Regexp
	minAge   int
	maxAge   int
}

// NewAgeExtractor creates an age extractor with the standard cascade
func NewAgeExtractor() *AgeExtractor {
	return &AgeExtractor{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(\d{1,3})\s*years?\s*old\b`),
			regexp.MustCompile(`(?i)\bage\s*(\d{1,3})\b`),
			regexp.MustCompile(`(?i)\b(\d{1,3})\s*y/?o\b`),
			regexp.MustCompile(`(?i)\b(\d{1,3})-year-old\b`),
			regexp.MustCompile(`(?i)\b(\d{1,3})\s*years?\s*of\s*age\b`),
			// appositive form the bulletins use: "identified as Name, N,"
			regexp.MustCompile(`(?i)identified\s+as\s+[^,]+,\s*(\d{1,3})\b`),
		},
		minAge: 1,
		maxAge: 100,
	}
}

// Extract returns the first plausible age found, or nil when none is
func (e *AgeExtractor) Extract(text string) *int {
	for _, p := range e.patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if age < e.minAge || age > e.maxAge {
			continue
		}
		return &age
	}
	return nil
}

// GenderExtractor infers gender from lexical cues. Each cue present in the
// text counts one vote for its side; the side with strictly more votes wins
// and a tie stays unknown. Cues include trailing spaces so pronouns match as
// words, not as fragments of longer ones.
type GenderExtractor struct {
	maleCues   []string
	femaleCues []string
}

// NewGenderExtractor creates a gender extractor with the standard cue lists
func NewGenderExtractor() *GenderExtractor {
	return &GenderExtractor{
		maleCues:   []string{"male", "man", "boy", "he ", "his ", "him ", "mr."},
		femaleCues: []string{"female", "woman", "girl", "she ", "her ", "hers ", "ms."},
	}
}

// Extract returns the gender the cues vote for
func (e *GenderExtractor) Extract(text string) model.Gender {
	lower := strings.ToLower(text)

	maleVotes := 0
	for _, cue := range e.maleCues {
		if strings.Contains(lower, cue) {
			maleVotes++
		}
	}
	femaleVotes := 0
	for _, cue := range e.femaleCues {
		if strings.Contains(lower, cue) {
			femaleVotes++
		}
	}

	switch {
	case maleVotes > femaleVotes:
		return model.GenderMale
	case femaleVotes > maleVotes:
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}
