package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
	"gopkg.in/yaml.v3"
)

// Renderer writes reports as JSON, YAML, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
	}
}

// RenderJSON writes a report to the given path as indented JSON
func (r *Renderer) RenderJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// RenderYAML writes a report to the given path as YAML
func (r *Renderer) RenderYAML(v interface{}, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WriteBriefFile writes a prerendered LLM brief to its own file
func (r *Renderer) WriteBriefFile(markdown string, path string) error {
	return os.WriteFile(path, []byte(markdown), 0644)
}

// RenderMarkdown writes the cross-check report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var sb strings.Builder

	sb.WriteString("# Cold Case Cross-Reference Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC")))
	sb.WriteString(fmt.Sprintf("Target year: %d\n\n", report.TargetYear))
	sb.WriteString(fmt.Sprintf("Match threshold: %.2f\n\n", report.Threshold))

	sb.WriteString("## Sources\n\n")
	writeSourceSection(&sb, "Police Bulletin (primary)", &report.Bulletin)
	writeSourceSection(&sb, "Cold-Case Archive (secondary)", &report.Archive)

	sb.WriteString("## Records\n\n")
	sb.WriteString(fmt.Sprintf("### Police Bulletin (%d)\n\n", len(report.Bulletin.Records)))
	writeRecordsTable(&sb, report.Bulletin.Records)
	sb.WriteString(fmt.Sprintf("### Cold-Case Archive (%d)\n\n", len(report.Archive.Records)))
	writeRecordsTable(&sb, report.Archive.Records)

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("### Police Bulletin\n\n")
	writeStats(&sb, &report.Bulletin.Stats)
	sb.WriteString("### Cold-Case Archive\n\n")
	writeStats(&sb, &report.Archive.Stats)

	high, moderate, low := tierCounts(report.Matches)
	sb.WriteString(fmt.Sprintf("## Match Candidates (%d)\n\n", len(report.Matches)))
	if len(report.Matches) == 0 {
		sb.WriteString("_No match candidates above the threshold._\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d high, %d moderate, %d low confidence. Pairs scoring above %.2f, ranked by score.\n\n",
			high, moderate, low, report.Threshold))
		for i, m := range report.Matches {
			sb.WriteString(fmt.Sprintf("### %d. %s / %s (score %.2f, %s confidence)\n\n",
				i+1, m.RecordA.VictimName, m.RecordB.VictimName, m.Score, m.Confidence))
			sb.WriteString(fmt.Sprintf("- **Bulletin record**: %s\n", recordLine(&m.RecordA)))
			sb.WriteString(fmt.Sprintf("- **Archive record**: %s\n", recordLine(&m.RecordB)))
			sb.WriteString("- **Why**:\n")
			for _, reason := range m.Reasons {
				sb.WriteString(fmt.Sprintf("  - %s\n", reason))
			}
			sb.WriteString("\n")
		}
	}

	if report.Brief != nil && report.Brief.Enabled {
		sb.WriteString("## LLM Brief\n\n")
		sb.WriteString(fmt.Sprintf("A generated case brief (%s) was written to a separate file. ", report.Brief.Provider))
		sb.WriteString("It is presentation only and never affects scores.\n\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString(footerText)
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// RenderSourceMarkdown writes a single-source scan report as Markdown
func (r *Renderer) RenderSourceMarkdown(report *model.SourceReport, path string) error {
	var sb strings.Builder

	sb.WriteString("# Source Scan Report\n\n")
	writeSourceSection(&sb, sourceTitle(report.Source), report)

	sb.WriteString(fmt.Sprintf("## Records (%d)\n\n", len(report.Records)))
	writeRecordsTable(&sb, report.Records)

	sb.WriteString("## Statistics\n\n")
	writeStats(&sb, &report.Stats)

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString(footerText)
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// RenderSummary prints a one-screen cross-check summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	high, moderate, low := tierCounts(report.Matches)

	fmt.Println()
	fmt.Println(strings.Repeat("─", 56))
	fmt.Println(" Cold Case Cross-Reference")
	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf(" Target year       %d\n", report.TargetYear)
	fmt.Printf(" Bulletin records  %-4d %s\n", len(report.Bulletin.Records), report.Bulletin.URL)
	fmt.Printf(" Archive records   %-4d %s\n", len(report.Archive.Records), report.Archive.URL)
	fmt.Printf(" Match candidates  %d (%d high / %d moderate / %d low)\n",
		len(report.Matches), high, moderate, low)

	for i, m := range report.Matches {
		if i >= 3 {
			break
		}
		fmt.Printf("   %d. %s / %s  score %.2f (%s)\n",
			i+1, m.RecordA.VictimName, m.RecordB.VictimName, m.Score, m.Confidence)
	}

	if report.Brief != nil && report.Brief.Enabled {
		fmt.Printf(" LLM brief         %s (%s)\n", report.Brief.Provider, report.Brief.Model)
	}
	fmt.Println(strings.Repeat("─", 56))
}

// RenderSourceSummary prints a one-screen source scan summary to stdout
func (r *Renderer) RenderSourceSummary(report *model.SourceReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf(" Source scan: %s\n", report.URL)
	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf(" Source            %s\n", report.Source)
	fmt.Printf(" Trust tier        %s\n", report.Trust)
	fmt.Printf(" Candidate blocks  %d (%d dropped, %d duplicates)\n",
		report.Blocks, report.Dropped, report.Duplicates)
	fmt.Printf(" Records           %d\n", len(report.Records))
	for _, warning := range report.Warnings {
		fmt.Printf(" ⚠ %s\n", warning)
	}
	fmt.Println(strings.Repeat("─", 56))
}

const footerText = "Coldtrail correlates public records. Match candidates are leads for human review, never identifications.\n"

// sourceTitle maps a source label to its display heading
func sourceTitle(source model.Source) string {
	if source == model.SourceSecondary {
		return "Cold-Case Archive (secondary)"
	}
	return "Police Bulletin (primary)"
}

// writeSourceSection writes source metadata bullets
func writeSourceSection(sb *strings.Builder, title string, report *model.SourceReport) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", title))
	sb.WriteString(fmt.Sprintf("- **URL**: %s\n", report.URL))
	if report.Subject != "" {
		sb.WriteString(fmt.Sprintf("- **Subject**: %s\n", report.Subject))
	}
	sb.WriteString(fmt.Sprintf("- **Trust tier**: %s\n", report.Trust))
	if !report.FetchedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Fetched**: %s\n", report.FetchedAt.Format("2006-01-02 15:04 UTC")))
	}
	sb.WriteString(fmt.Sprintf("- **Blocks**: %d candidates, %d dropped, %d duplicates collapsed\n",
		report.Blocks, report.Dropped, report.Duplicates))
	sb.WriteString(fmt.Sprintf("- **Records**: %d\n", len(report.Records)))
	for _, warning := range report.Warnings {
		sb.WriteString(fmt.Sprintf("- ⚠ %s\n", warning))
	}
	sb.WriteString("\n")
}

// writeRecordsTable writes the canonical record list as a Markdown table
func writeRecordsTable(sb *strings.Builder, records []model.CaseRecord) {
	if len(records) == 0 {
		sb.WriteString("_No records extracted._\n\n")
		return
	}

	sb.WriteString("| # | Name | Age | Gender | Date | Location |\n")
	sb.WriteString("|---|------|-----|--------|------|----------|\n")
	for i, rec := range records {
		age := "-"
		if rec.Age != nil {
			age = fmt.Sprintf("%d", *rec.Age)
		}
		date := rec.Date
		if date == "" {
			date = "-"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			i+1, rec.VictimName, age, rec.Gender, date, rec.Location))
	}
	sb.WriteString("\n")
}

// recordLine formats one record as a single inline summary, with the same
// field order and "-" fallbacks as writeRecordsTable
func recordLine(rec *model.CaseRecord) string {
	age := "-"
	if rec.Age != nil {
		age = fmt.Sprintf("%d", *rec.Age)
	}
	date := rec.Date
	if date == "" {
		date = "-"
	}
	return fmt.Sprintf("%s, %s, %s, %s, %s", rec.VictimName, age, rec.Gender, date, rec.Location)
}

// writeStats writes the statistics section for one source
func writeStats(sb *strings.Builder, stats *model.CaseStats) {
	if stats.Total == 0 {
		sb.WriteString("_No statistics: no records._\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("- Total cases: %d\n", stats.Total))

	if len(stats.Genders) > 0 {
		parts := make([]string, 0, len(stats.Genders))
		for _, gender := range []model.Gender{model.GenderMale, model.GenderFemale, model.GenderUnknown} {
			if count := stats.Genders[gender]; count > 0 {
				parts = append(parts, fmt.Sprintf("%d %s (%.1f%%)", count, gender, stats.GenderPct[gender]))
			}
		}
		sb.WriteString(fmt.Sprintf("- Gender: %s\n", strings.Join(parts, ", ")))
	}

	if stats.AgeKnown > 0 {
		sb.WriteString(fmt.Sprintf("- Age: %d known, average %.1f, median %.1f, range %d-%d\n",
			stats.AgeKnown, stats.AgeAverage, stats.AgeMedian, stats.AgeMin, stats.AgeMax))
	}

	if stats.PeakMonth != "" {
		sb.WriteString(fmt.Sprintf("- Peak month: %s\n", stats.PeakMonth))
	}

	if len(stats.Hotspots) > 0 {
		parts := make([]string, 0, len(stats.Hotspots))
		for _, entry := range sortedCounts(stats.Hotspots) {
			parts = append(parts, fmt.Sprintf("%s (%d)", entry.name, entry.count))
		}
		sb.WriteString(fmt.Sprintf("- Hotspots: %s\n", strings.Join(parts, ", ")))
	}

	if len(stats.Insights) > 0 {
		sb.WriteString("- Insights:\n")
		for _, insight := range stats.Insights {
			sb.WriteString(fmt.Sprintf("  - %s\n", insight))
		}
	}

	sb.WriteString("\n")
}

// tierCounts tallies match candidates per confidence tier
func tierCounts(matches []model.MatchCandidate) (high, moderate, low int) {
	for _, m := range matches {
		switch m.Confidence {
		case "high":
			high++
		case "moderate":
			moderate++
		default:
			low++
		}
	}
	return high, moderate, low
}

type countEntry struct {
	name  string
	count int
}

// sortedCounts orders a count map by count descending, then name, so
// rendered output is deterministic
func sortedCounts(counts map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, countEntry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}
