package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// monthSeasons maps month names to seasons for the temporal rollup
var monthSeasons = map[string]string{
	"December": "Winter", "January": "Winter", "February": "Winter",
	"March": "Spring", "April": "Spring", "May": "Spring",
	"June": "Summer", "July": "Summer", "August": "Summer",
	"September": "Fall", "October": "Fall", "November": "Fall",
}

// calendarOrder fixes the month iteration order so peak-month ties resolve
// to the earlier month.
var calendarOrder = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Analyzer computes summary statistics over canonical record lists
type Analyzer struct {
	neighborhoods []string // lowercase
}

// NewAnalyzer creates an analyzer aware of the configured neighborhoods
func NewAnalyzer(neighborhoods []string) *Analyzer {
	lowered := make([]string, len(neighborhoods))
	for i, n := range neighborhoods {
		lowered[i] = strings.ToLower(n)
	}
	return &Analyzer{neighborhoods: lowered}
}

// Compute summarizes a record list. Every field is zero-safe: an empty list
// yields zero values and no insights.
func (a *Analyzer) Compute(records []model.CaseRecord) model.CaseStats {
	stats := model.CaseStats{Total: len(records)}
	if len(records) == 0 {
		return stats
	}
	total := float64(len(records))

	// Gender distribution
	genders := make(map[model.Gender]int)
	for _, rec := range records {
		gender := rec.Gender
		if gender == "" {
			gender = model.GenderUnknown
		}
		genders[gender]++
	}
	stats.Genders = genders
	stats.GenderPct = make(map[model.Gender]float64, len(genders))
	for gender, count := range genders {
		stats.GenderPct[gender] = 100 * float64(count) / total
	}

	// Age statistics over known ages only
	var ages []int
	for _, rec := range records {
		if rec.Age != nil {
			ages = append(ages, *rec.Age)
		}
	}
	stats.AgeKnown = len(ages)
	if len(ages) > 0 {
		sort.Ints(ages)
		sum := 0
		for _, age := range ages {
			sum += age
		}
		stats.AgeAverage = float64(sum) / float64(len(ages))
		stats.AgeMedian = median(ages)
		stats.AgeMin = ages[0]
		stats.AgeMax = ages[len(ages)-1]

		groups := make(map[string]int)
		for _, age := range ages {
			groups[ageGroup(age)]++
		}
		stats.AgeGroups = groups
	}

	// Temporal distribution from canonical dates
	monthly := make(map[string]int)
	for _, rec := range records {
		if month := recordMonth(rec.Date); month != "" {
			monthly[month]++
		}
	}
	if len(monthly) > 0 {
		stats.Monthly = monthly
		stats.PeakMonth = peakMonth(monthly)

		seasons := make(map[string]int)
		for month, count := range monthly {
			seasons[monthSeasons[month]] += count
		}
		stats.Seasons = seasons
	}

	// Location distribution and neighborhood hotspots
	locations := make(map[string]int)
	hotspots := make(map[string]int)
	for _, rec := range records {
		if !rec.HasLocation() {
			continue
		}
		locations[rec.Location]++
		hotspots[a.neighborhoodOf(rec.Location)]++
	}
	if len(locations) > 0 {
		stats.Locations = locations
		stats.Hotspots = hotspots
	}

	// Field completeness
	names, dates, knownLocs := 0, 0, 0
	for _, rec := range records {
		if rec.HasName() {
			names++
		}
		if rec.HasDate() {
			dates++
		}
		if rec.HasLocation() {
			knownLocs++
		}
	}
	stats.Completeness = map[string]float64{
		"name":     100 * float64(names) / total,
		"age":      100 * float64(len(ages)) / total,
		"date":     100 * float64(dates) / total,
		"location": 100 * float64(knownLocs) / total,
	}

	stats.Insights = a.insights(&stats, ages)

	return stats
}

// insights derives the human-readable observations the summary report
// prints. Conditions and phrasings are fixed; the completeness line is
// always last.
func (a *Analyzer) insights(stats *model.CaseStats, ages []int) []string {
	var insights []string

	malePct := stats.GenderPct[model.GenderMale]
	femalePct := stats.GenderPct[model.GenderFemale]
	if stats.Genders[model.GenderMale] > 0 && stats.Genders[model.GenderFemale] > 0 && malePct > femalePct*2 {
		insights = append(insights, fmt.Sprintf(
			"Male victims significantly outnumber female victims (%.1f%% vs %.1f%%)", malePct, femalePct))
	}

	if len(ages) > 0 {
		young := 0
		for _, age := range ages {
			if age >= 18 && age <= 35 {
				young++
			}
		}
		youngPct := 100 * float64(young) / float64(len(ages))
		if youngPct > 50 {
			insights = append(insights, fmt.Sprintf(
				"Young adults (18-35) represent %.1f%% of victims with known ages", youngPct))
		}
	}

	dated := 0
	for _, count := range stats.Monthly {
		dated += count
	}
	if dated > 0 {
		summer := stats.Monthly["June"] + stats.Monthly["July"] + stats.Monthly["August"]
		summerPct := 100 * float64(summer) / float64(dated)
		if summerPct > 30 {
			insights = append(insights, fmt.Sprintf(
				"Summer months show elevated activity with %.1f%% of cases", summerPct))
		}
	}

	if len(stats.Locations) > 0 {
		topLoc, topCount := "", 0
		for loc, count := range stats.Locations {
			if count > topCount || (count == topCount && loc < topLoc) {
				topLoc, topCount = loc, count
			}
		}
		if topCount > 1 {
			insights = append(insights, fmt.Sprintf(
				"Highest concentration: %s with %d cases", topLoc, topCount))
		}
	}

	insights = append(insights, fmt.Sprintf(
		"Data completeness: %.1f%% have known ages, %.1f%% have known dates",
		stats.Completeness["age"], stats.Completeness["date"]))

	return insights
}

// ageGroup buckets an age the way the summary report presents them
func ageGroup(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	case age < 65:
		return "55-64"
	default:
		return "65+"
	}
}

// recordMonth returns the month name leading a canonical date, or "" when
// the date is missing or does not start with a month
func recordMonth(date string) string {
	fields := strings.Fields(date)
	if len(fields) == 0 {
		return ""
	}
	if _, ok := monthSeasons[fields[0]]; !ok {
		return ""
	}
	return fields[0]
}

// peakMonth returns the month with the most cases, earliest month on ties
func peakMonth(monthly map[string]int) string {
	peak, best := "", 0
	for _, month := range calendarOrder {
		if count := monthly[month]; count > best {
			peak, best = month, count
		}
	}
	return peak
}

// neighborhoodOf buckets a known location under its neighborhood, or
// "Other/Unclassified" when no configured neighborhood appears in it
func (a *Analyzer) neighborhoodOf(location string) string {
	lower := strings.ToLower(location)
	for _, n := range a.neighborhoods {
		if strings.Contains(lower, n) {
			return titleCase(n)
		}
	}
	return "Other/Unclassified"
}

func median(sorted []int) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
