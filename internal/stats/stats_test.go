package stats

import (
	"testing"

	"github.com/ppiankov/coldtrail/internal/model"
)

func intPtr(n int) *int { return &n }

var testNeighborhoods = []string{
	"roxbury", "dorchester", "mattapan", "south end", "back bay",
	"jamaica plain", "charlestown", "east boston", "south boston",
	"brighton", "allston", "fenway", "north end",
}

func TestAnalyzer_EmptyInput(t *testing.T) {
	stats := NewAnalyzer(testNeighborhoods).Compute(nil)

	if stats.Total != 0 {
		t.Errorf("Expected total 0, got %d", stats.Total)
	}
	if stats.PeakMonth != "" {
		t.Errorf("Expected no peak month, got %q", stats.PeakMonth)
	}
	if len(stats.Insights) != 0 {
		t.Errorf("Expected no insights, got %v", stats.Insights)
	}
}

func TestAnalyzer_ComputeFullSet(t *testing.T) {
	records := []model.CaseRecord{
		{VictimName: "Robert Jones", Age: intPtr(22), Gender: model.GenderMale, Date: "July 4, 2014", Location: "roxbury"},
		{VictimName: "James Carter", Age: intPtr(30), Gender: model.GenderMale, Date: "July 9, 2014", Location: "roxbury"},
		{VictimName: model.UnknownName, Age: intPtr(34), Gender: model.GenderMale, Date: "June 1, 2014", Location: "45 main street, dorchester"},
		{VictimName: "Maria Lopez", Age: intPtr(27), Gender: model.GenderFemale, Date: "January 5, 2014", Location: model.UnknownLocation},
	}

	stats := NewAnalyzer(testNeighborhoods).Compute(records)

	if stats.Total != 4 {
		t.Fatalf("Expected total 4, got %d", stats.Total)
	}
	if stats.Genders[model.GenderMale] != 3 || stats.Genders[model.GenderFemale] != 1 {
		t.Errorf("Unexpected gender counts: %v", stats.Genders)
	}
	if stats.GenderPct[model.GenderMale] != 75.0 {
		t.Errorf("Expected 75%% male, got %f", stats.GenderPct[model.GenderMale])
	}

	if stats.AgeKnown != 4 {
		t.Errorf("Expected 4 known ages, got %d", stats.AgeKnown)
	}
	if stats.AgeAverage != 28.25 {
		t.Errorf("Expected average age 28.25, got %f", stats.AgeAverage)
	}
	if stats.AgeMedian != 28.5 {
		t.Errorf("Expected median age 28.5, got %f", stats.AgeMedian)
	}
	if stats.AgeMin != 22 || stats.AgeMax != 34 {
		t.Errorf("Expected age range 22-34, got %d-%d", stats.AgeMin, stats.AgeMax)
	}
	if stats.AgeGroups["18-24"] != 1 || stats.AgeGroups["25-34"] != 3 {
		t.Errorf("Unexpected age groups: %v", stats.AgeGroups)
	}

	if stats.Monthly["July"] != 2 || stats.Monthly["June"] != 1 || stats.Monthly["January"] != 1 {
		t.Errorf("Unexpected monthly counts: %v", stats.Monthly)
	}
	if stats.PeakMonth != "July" {
		t.Errorf("Expected peak month July, got %q", stats.PeakMonth)
	}
	if stats.Seasons["Summer"] != 3 || stats.Seasons["Winter"] != 1 {
		t.Errorf("Unexpected seasons: %v", stats.Seasons)
	}

	if stats.Locations["roxbury"] != 2 {
		t.Errorf("Unexpected locations: %v", stats.Locations)
	}
	if stats.Hotspots["Roxbury"] != 2 || stats.Hotspots["Dorchester"] != 1 {
		t.Errorf("Unexpected hotspots: %v", stats.Hotspots)
	}

	if stats.Completeness["age"] != 100.0 || stats.Completeness["name"] != 75.0 {
		t.Errorf("Unexpected completeness: %v", stats.Completeness)
	}

	expected := []string{
		"Male victims significantly outnumber female victims (75.0% vs 25.0%)",
		"Young adults (18-35) represent 100.0% of victims with known ages",
		"Summer months show elevated activity with 75.0% of cases",
		"Highest concentration: roxbury with 2 cases",
		"Data completeness: 100.0% have known ages, 100.0% have known dates",
	}
	if len(stats.Insights) != len(expected) {
		t.Fatalf("Expected %d insights, got %d: %v", len(expected), len(stats.Insights), stats.Insights)
	}
	for i, want := range expected {
		if stats.Insights[i] != want {
			t.Errorf("Insight %d: expected %q, got %q", i, want, stats.Insights[i])
		}
	}
}

func TestAnalyzer_PeakMonthTieResolvesToCalendarOrder(t *testing.T) {
	records := []model.CaseRecord{
		{VictimName: "A B", Date: "March 1, 2014", Location: model.UnknownLocation},
		{VictimName: "C D", Date: "February 2, 2014", Location: model.UnknownLocation},
	}

	stats := NewAnalyzer(testNeighborhoods).Compute(records)
	if stats.PeakMonth != "February" {
		t.Errorf("Expected tie to resolve to February, got %q", stats.PeakMonth)
	}
}

func TestAgeGroup_Boundaries(t *testing.T) {
	tests := []struct {
		age   int
		group string
	}{
		{17, "Under 18"},
		{18, "18-24"},
		{24, "18-24"},
		{25, "25-34"},
		{34, "25-34"},
		{35, "35-44"},
		{45, "45-54"},
		{55, "55-64"},
		{64, "55-64"},
		{65, "65+"},
		{80, "65+"},
	}

	for _, tt := range tests {
		if got := ageGroup(tt.age); got != tt.group {
			t.Errorf("ageGroup(%d) = %q, expected %q", tt.age, got, tt.group)
		}
	}
}
