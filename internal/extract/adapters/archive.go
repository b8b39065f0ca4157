package adapters

import (
	"regexp"
	"strings"

	"github.com/ppiankov/coldtrail/internal/extract"
	"github.com/ppiankov/coldtrail/internal/model"
	"golang.org/x/net/html"
)

// Archive rows are short tabular snippets rather than narrative prose, so
// the extraction rules here are looser than the bulletin ones: the first
// capitalized pair is taken as the name, dates from any year are accepted,
// and the raw row text doubles as the description.
var (
	archiveClassPattern = regexp.MustCompile(`(?i)case|entry|row`)
	archiveNamePattern  = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\b`)
	archiveDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
		regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
		regexp.MustCompile(`(?i)\b(?:` + extract.MonthNames + `)\s+\d{1,2},?\s+\d{4}\b`),
	}

	// Substring matched against the lowercased row, so "ma" alone keeps
	// most prose that mentions the state in any form.
	archiveAreaIndicators = []string{"boston", "massachusetts", "ma", "suffolk county"}
)

// Rows longer than this are cut when used as the description.
const archiveDescCap = 200

// ArchiveAdapter parses cold-case archive listings: many small case rows,
// each carrying a name, a date from any year, and a sentence or two of
// circumstances. Rows that don't mention the Boston area are skipped.
type ArchiveAdapter struct {
	BaseAdapter
	ages        *extract.AgeExtractor
	locations   *extract.LocationExtractor
	dates       *extract.DateExtractor
	evidenceLen int
}

// NewArchiveAdapter creates an archive adapter sharing the bulletin
// field extractors where row shape allows
func NewArchiveAdapter(cfg model.ExtractConfig) *ArchiveAdapter {
	return &ArchiveAdapter{
		ages:        extract.NewAgeExtractor(),
		locations:   extract.NewLocationExtractor(cfg.Neighborhoods),
		dates:       extract.NewDateExtractor(cfg.TargetYear),
		evidenceLen: cfg.DescEvidenceLen,
	}
}

// Name returns the adapter name
func (a *ArchiveAdapter) Name() string {
	return "archive"
}

// CanHandle matches cold-case archive hosts and paths
func (a *ArchiveAdapter) CanHandle(url string, contentType string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "projectcoldcase.org") ||
		strings.Contains(lower, "cold-case") ||
		strings.Contains(lower, "coldcase")
}

// ExtractRecords walks the document for case rows and builds one record
// per row that mentions the area and passes validity
func (a *ArchiveAdapter) ExtractRecords(doc *html.Node, url string) (Result, error) {
	elements := a.FindAll(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		switch n.Data {
		case "div", "tr", "li":
			return archiveClassPattern.MatchString(a.GetAttribute(n, "class"))
		}
		return false
	})

	// Unstructured archives get a coarser sweep over text-bearing tags.
	if len(elements) == 0 {
		elements = a.FindAll(doc, func(n *html.Node) bool {
			if n.Type != html.ElementNode {
				return false
			}
			return n.Data == "p" || n.Data == "div" || n.Data == "td"
		})
	}

	candidates := 0
	records := make([]model.CaseRecord, 0, len(elements))
	for i, el := range elements {
		text := extract.NodeText(el)
		if !a.inArea(text) {
			continue
		}
		candidates++

		rec := a.buildRow(text)
		rec.Block = i
		if !extract.ValidRecord(&rec, a.evidenceLen) {
			continue
		}
		records = append(records, rec)
	}

	return Result{Records: records, Candidates: candidates}, nil
}

// inArea reports whether a row mentions the Boston area and carries
// enough text to be a case rather than a navigation fragment
func (a *ArchiveAdapter) inArea(text string) bool {
	if len(text) <= 30 {
		return false
	}
	lower := strings.ToLower(text)
	for _, indicator := range archiveAreaIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// buildRow extracts the fields a tabular row can carry. Gender stays
// unknown: rows have no pronoun prose to read it from.
func (a *ArchiveAdapter) buildRow(text string) model.CaseRecord {
	rec := model.CaseRecord{
		Source:      model.SourceSecondary,
		VictimName:  model.UnknownName,
		Gender:      model.GenderUnknown,
		Location:    a.locations.Extract(text),
		Description: capRow(text),
	}

	if m := archiveNamePattern.FindStringSubmatch(text); m != nil {
		rec.VictimName = m[1]
	}

	rec.Age = a.ages.Extract(text)

	for _, pattern := range archiveDatePatterns {
		raw := pattern.FindString(text)
		if raw == "" {
			continue
		}
		if display, ok := a.dates.Display(raw); ok {
			rec.Date = display
		}
		break
	}

	return rec
}

func capRow(text string) string {
	if len(text) > archiveDescCap {
		return text[:archiveDescCap] + "..."
	}
	return text
}
