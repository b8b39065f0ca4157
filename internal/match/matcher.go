package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// unknownName is the sentinel in lowercase, the form scoring compares in
var unknownName = strings.ToLower(model.UnknownName)

// Matcher scores bulletin records against archive records. Scoring is
// additive over four rules (name, age, year, location) and clamped to 1.0;
// each rule that contributes also emits exactly one reason string, so a
// candidate's reasons are always explainable from its score.
type Matcher struct {
	targetYear int
	threshold  float64
	areas      []string // lowercase area names for location scoring
}

// NewMatcher creates a matcher focused on the given bulletin year
func NewMatcher(targetYear int, cfg model.MatchConfig) *Matcher {
	areas := make([]string, len(cfg.Areas))
	for i, area := range cfg.Areas {
		areas[i] = strings.ToLower(area)
	}

	return &Matcher{
		targetYear: targetYear,
		threshold:  cfg.Threshold,
		areas:      areas,
	}
}

// Match enumerates every bulletin/archive pair, keeping those that score
// strictly above the threshold. Bulletin records outside the target year
// (or without a recognizable year) are skipped entirely. The result is
// sorted by score descending; ties keep enumeration order.
func (m *Matcher) Match(bulletins, archives []model.CaseRecord) []model.MatchCandidate {
	candidates := make([]model.MatchCandidate, 0)

	for i, bulletin := range bulletins {
		year, ok := bulletin.Year()
		if !ok || year != m.targetYear {
			continue
		}

		for j, archive := range archives {
			score, reasons := m.Score(&bulletin, &archive)
			if score <= m.threshold {
				continue
			}

			candidates = append(candidates, model.MatchCandidate{
				IndexA:     i,
				IndexB:     j,
				RecordA:    bulletin,
				RecordB:    archive,
				Score:      score,
				Confidence: model.ConfidenceTier(score),
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(candidates, func(x, y int) bool {
		return candidates[x].Score > candidates[y].Score
	})

	return candidates
}

// Score computes the match score for one pair and the reason strings for
// every rule that contributed. Both come from a single pass over the rules,
// which is what keeps them consistent.
func (m *Matcher) Score(a, b *model.CaseRecord) (float64, []string) {
	var score float64
	var reasons []string

	// 1. Victim name (strongest signal: 0.6 exact, 0.4 partial)
	nameA := strings.ToLower(a.VictimName)
	nameB := strings.ToLower(b.VictimName)
	if nameA != "" && nameB != "" && nameA != unknownName && nameB != unknownName {
		switch {
		case nameA == nameB:
			score += 0.6
			reasons = append(reasons, fmt.Sprintf("Exact victim name match: %s", a.VictimName))
		case nameOverlap(nameA, nameB):
			score += 0.4
			reasons = append(reasons, fmt.Sprintf("Partial name match: %s / %s", a.VictimName, b.VictimName))
		}
	}

	// 2. Age proximity (0.3 / 0.2 / 0.1)
	if a.Age != nil && b.Age != nil {
		switch diff := absInt(*a.Age - *b.Age); {
		case diff == 0:
			score += 0.3
			reasons = append(reasons, fmt.Sprintf("Exact age match: %d years old", *a.Age))
		case diff <= 2:
			score += 0.2
			reasons = append(reasons, fmt.Sprintf("Very close age: %d vs %d years old", *a.Age, *b.Age))
		case diff <= 5:
			score += 0.1
			reasons = append(reasons, fmt.Sprintf("Similar age range: %d vs %d years old", *a.Age, *b.Age))
		}
	}

	// 3. Year proximity (0.3 / 0.2 / 0.1)
	yearA, okA := a.Year()
	yearB, okB := b.Year()
	if okA && okB {
		switch diff := absInt(yearA - yearB); {
		case diff == 0:
			score += 0.3
			reasons = append(reasons, fmt.Sprintf("Same year: %d", yearA))
		case diff <= 1:
			score += 0.2
			reasons = append(reasons, fmt.Sprintf("Adjacent years: %d vs %d", yearA, yearB))
		case diff <= 3:
			score += 0.1
			reasons = append(reasons, fmt.Sprintf("Close timeframe: %d vs %d", yearA, yearB))
		}
	}

	// 4. Location (0.3 exact, 0.2 shared area, 0.1 both in the area).
	// Gated on both sides naming a recognized area, so unknown locations
	// never score.
	locA := strings.ToLower(a.Location)
	locB := strings.ToLower(b.Location)
	if locA != "" && locB != "" && m.inArea(locA) && m.inArea(locB) {
		switch {
		case locA == locB:
			score += 0.3
			reasons = append(reasons, fmt.Sprintf("Exact location match: %s", a.Location))
		case m.sharedArea(locA, locB):
			score += 0.2
			reasons = append(reasons, fmt.Sprintf("Location overlap: %s / %s", a.Location, b.Location))
		default:
			score += 0.1
			reasons = append(reasons, "Confirmed Boston area case")
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	return score, reasons
}

// nameOverlap reports whether any word of nameA longer than two letters
// appears inside nameB. Both arguments must already be lowercase.
func nameOverlap(nameA, nameB string) bool {
	for _, part := range strings.Fields(nameA) {
		if len(part) > 2 && strings.Contains(nameB, part) {
			return true
		}
	}
	return false
}

// inArea reports whether a lowercase location mentions any recognized area
func (m *Matcher) inArea(loc string) bool {
	for _, area := range m.areas {
		if strings.Contains(loc, area) {
			return true
		}
	}
	return false
}

// sharedArea reports whether both lowercase locations mention the same area
func (m *Matcher) sharedArea(locA, locB string) bool {
	for _, area := range m.areas {
		if strings.Contains(locA, area) && strings.Contains(locB, area) {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
