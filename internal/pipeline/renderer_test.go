package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/coldtrail/internal/model"
)

func intPtr(v int) *int {
	return &v
}

func sampleCrossReport() *model.Report {
	return &model.Report{
		TargetYear: 2014,
		Threshold:  0.2,
		Bulletin: model.SourceReport{
			Source:    model.SourcePrimary,
			URL:       "https://bpdnews.com/2014-cold-cases",
			Subject:   "2014 Cold Cases",
			Trust:     model.TrustOfficial,
			FetchedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			Blocks:    3,
			Dropped:   1,
			Records: []model.CaseRecord{
				{
					Source:     model.SourcePrimary,
					VictimName: "Marcus Johnson",
					Age:        intPtr(34),
					Gender:     model.GenderMale,
					Date:       "January 5, 2014",
					Location:   "roxbury",
				},
				{
					Source:     model.SourcePrimary,
					VictimName: "Angela Torres",
					Gender:     model.GenderFemale,
					Date:       "March 12, 2014",
					Location:   "dorchester",
				},
			},
			Stats: model.CaseStats{
				Total:      2,
				Genders:    map[model.Gender]int{model.GenderMale: 1, model.GenderFemale: 1},
				GenderPct:  map[model.Gender]float64{model.GenderMale: 50.0, model.GenderFemale: 50.0},
				AgeKnown:   1,
				AgeAverage: 34.0,
				AgeMedian:  34.0,
				AgeMin:     34,
				AgeMax:     34,
				PeakMonth:  "January",
				Hotspots:   map[string]int{"roxbury": 1, "dorchester": 1},
				Insights:   []string{"2 cases in the target year"},
			},
		},
		Archive: model.SourceReport{
			Source: model.SourceSecondary,
			URL:    "https://example.org/cold-case-archive",
			Trust:  model.TrustUnknown,
			Blocks: 1,
			Records: []model.CaseRecord{
				{
					Source:     model.SourceSecondary,
					VictimName: "Marcus Johnson",
					Age:        intPtr(35),
					Gender:     model.GenderMale,
					Date:       "2014",
					Location:   "roxbury",
				},
			},
			Stats: model.CaseStats{Total: 1},
		},
		Matches: []model.MatchCandidate{
			{
				IndexA: 0,
				IndexB: 0,
				RecordA: model.CaseRecord{
					VictimName: "Marcus Johnson",
					Age:        intPtr(34),
					Gender:     model.GenderMale,
					Date:       "January 5, 2014",
					Location:   "roxbury",
				},
				RecordB: model.CaseRecord{
					VictimName: "Marcus Johnson",
					Age:        intPtr(35),
					Gender:     model.GenderMale,
					Date:       "2014",
					Location:   "roxbury",
				},
				Score:      0.85,
				Confidence: "high",
				Reasons:    []string{"exact name match", "same location: roxbury"},
			},
		},
		GeneratedAt: time.Date(2026, 8, 25, 12, 30, 0, 0, time.UTC),
	}
}

func TestRenderer_MarkdownFull(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := renderer.RenderMarkdown(sampleCrossReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Cold Case Cross-Reference Report",
		"Target year: 2014",
		"Match threshold: 0.20",
		"### Police Bulletin (primary)",
		"### Cold-Case Archive (secondary)",
		"| 1 | Marcus Johnson | 34 | male | January 5, 2014 | roxbury |",
		"| 2 | Angela Torres | - | female | March 12, 2014 | dorchester |",
		"- Total cases: 2",
		"- Peak month: January",
		"## Match Candidates (1)",
		"1 high, 0 moderate, 0 low confidence",
		"### 1. Marcus Johnson / Marcus Johnson (score 0.85, high confidence)",
		"- exact name match",
		"- same location: roxbury",
		"never identifications",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_MarkdownNoFooter(t *testing.T) {
	renderer := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := renderer.RenderMarkdown(sampleCrossReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "never identifications") {
		t.Error("Expected no footer when disabled")
	}
}

func TestRenderer_MarkdownNoData(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "empty.md")

	report := &model.Report{
		TargetYear:  2014,
		Threshold:   0.2,
		Bulletin:    model.SourceReport{Source: model.SourcePrimary, URL: "https://example.com/a"},
		Archive:     model.SourceReport{Source: model.SourceSecondary, URL: "https://example.com/b"},
		GeneratedAt: time.Now().UTC(),
	}
	if err := renderer.RenderMarkdown(report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	md := string(data)
	if !strings.Contains(md, "_No records extracted._") {
		t.Error("Expected no-records placeholder")
	}
	if !strings.Contains(md, "_No match candidates above the threshold._") {
		t.Error("Expected no-matches placeholder")
	}
	if !strings.Contains(md, "_No statistics: no records._") {
		t.Error("Expected no-stats placeholder")
	}
}

func TestRenderer_MarkdownBriefNote(t *testing.T) {
	renderer := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	report := sampleCrossReport()
	report.Brief = &model.CaseBrief{
		Enabled:  true,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		BriefMD:  "A brief.",
	}
	if err := renderer.RenderMarkdown(report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	md := string(data)
	if !strings.Contains(md, "## LLM Brief") {
		t.Error("Expected LLM brief section")
	}
	if !strings.Contains(md, "never affects scores") {
		t.Error("Expected separation note")
	}
	if strings.Contains(md, "A brief.") {
		t.Error("Brief body must not be embedded in the main report")
	}
}

func TestRenderer_JSONRoundTrip(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := renderer.RenderJSON(sampleCrossReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.TargetYear != 2014 {
		t.Errorf("Expected target year 2014, got %d", decoded.TargetYear)
	}
	if len(decoded.Bulletin.Records) != 2 {
		t.Errorf("Expected 2 bulletin records, got %d", len(decoded.Bulletin.Records))
	}
	if decoded.Matches[0].RecordA.VictimName != "Marcus Johnson" {
		t.Errorf("Unexpected match record: %s", decoded.Matches[0].RecordA.VictimName)
	}
}

func TestRenderer_YAML(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.yaml")

	if err := renderer.RenderYAML(sampleCrossReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "target_year: 2014") {
		t.Error("Expected YAML to contain target_year")
	}
	if !strings.Contains(text, "victim_name: Marcus Johnson") {
		t.Error("Expected YAML to contain victim_name")
	}
}

func TestRenderer_SourceMarkdown(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "source.md")

	report := sampleCrossReport().Bulletin
	report.Warnings = []string{"2 pages inaccessible"}
	if err := renderer.RenderSourceMarkdown(&report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	md := string(data)
	for _, want := range []string{
		"# Source Scan Report",
		"### Police Bulletin (primary)",
		"- **URL**: https://bpdnews.com/2014-cold-cases",
		"- **Trust tier**: official",
		"⚠ 2 pages inaccessible",
		"## Records (2)",
		"| 1 | Marcus Johnson | 34 | male | January 5, 2014 | roxbury |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected source markdown to contain %q", want)
		}
	}
}

func TestRenderer_WriteBriefFile(t *testing.T) {
	renderer := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.brief.md")

	if err := renderer.WriteBriefFile("# LLM Case Brief\n\nBody.\n", path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "# LLM Case Brief") {
		t.Error("Expected brief header in file")
	}
}

func TestTierCounts(t *testing.T) {
	matches := []model.MatchCandidate{
		{Confidence: "high"},
		{Confidence: "high"},
		{Confidence: "moderate"},
		{Confidence: "low"},
	}
	high, moderate, low := tierCounts(matches)
	if high != 2 || moderate != 1 || low != 1 {
		t.Errorf("Expected 2/1/1, got %d/%d/%d", high, moderate, low)
	}
}

func TestSortedCounts_Deterministic(t *testing.T) {
	counts := map[string]int{"roxbury": 3, "dorchester": 3, "mattapan": 5}
	entries := sortedCounts(counts)

	if entries[0].name != "mattapan" {
		t.Errorf("Expected mattapan first, got %s", entries[0].name)
	}
	if entries[1].name != "dorchester" || entries[2].name != "roxbury" {
		t.Errorf("Expected ties broken by name, got %s then %s", entries[1].name, entries[2].name)
	}
}
