package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// streetAddress matches "NUMBER Capitalized Words SUFFIX" street addresses
var streetAddress = regexp.MustCompile(
	`\b(\d+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Way|Place|Pl))\b`)

// LocationExtractor extracts incident locations. A street address beats a
// bare neighborhood name; when both appear the neighborhood is appended so
// the name survives for downstream centroid lookups. All output is
// lowercased.
type LocationExtractor struct {
	neighborhoods []string
}

// NewLocationExtractor creates a location extractor over the given
// neighborhood list. Neighborhood entries are matched case-insensitively in
// list order.
func NewLocationExtractor(neighborhoods []string) *LocationExtractor {
	lowered := make([]string, len(neighborhoods))
	for i, n := range neighborhoods {
		lowered[i] = strings.ToLower(n)
	}
	return &LocationExtractor{neighborhoods: lowered}
}

// Extract returns a street address, a neighborhood name, a combination of
// the two, or the unknown-location sentinel.
func (e *LocationExtractor) Extract(text string) string {
	var street string
	if m := streetAddress.FindStringSubmatch(text); m != nil {
		street = collapseWhitespace(strings.ToLower(m[1]))
	}

	var neighborhood string
	lower := strings.ToLower(text)
	for _, n := range e.neighborhoods {
		if strings.Contains(lower, n) {
			neighborhood = n
			break
		}
	}

	switch {
	case street != "" && neighborhood != "":
		return street + ", " + neighborhood
	case street != "":
		return street
	case neighborhood != "":
		return neighborhood
	default:
		return model.UnknownLocation
	}
}
