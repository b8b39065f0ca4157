package extract

import (
	"fmt"
	"regexp"
)

// MonthNames is the regex alternation of full English month names, shared
// by every pattern that needs to recognize a spelled-out date.
const MonthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

// BlockSegmenter splits raw plain text into candidate case blocks using
// recurring date markers as delimiters. Each block is the span from one
// marker to the next (the last runs to end of text), so every block carries
// its own date evidence at the front.
type BlockSegmenter struct {
	marker *regexp.Regexp
	minLen int
}

// NewBlockSegmenter creates a segmenter keyed to the given target year.
// Spans shorter than minLen characters are dropped at emission, so callers
// only ever see adequately sized blocks.
func NewBlockSegmenter(year int, minLen int) *BlockSegmenter {
	pattern := fmt.Sprintf(`(%s)\s+\d{1,2},?\s+%d`, MonthNames, year)
	return &BlockSegmenter{
		marker: regexp.MustCompile(pattern),
		minLen: minLen,
	}
}

// Segment returns the candidate blocks in source order. Markers are matched
// greedily left-to-right, non-overlapping. Zero marker matches yield zero
// blocks; that is normal operation, not an error.
func (s *BlockSegmenter) Segment(text string) []string {
	locs := s.marker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var blocks []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := text[loc[0]:end]
		if len(block) >= s.minLen {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
