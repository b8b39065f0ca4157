package adapters

import (
	"strings"

	"github.com/ppiankov/coldtrail/internal/extract"
	"github.com/ppiankov/coldtrail/internal/model"
	"golang.org/x/net/html"
)

// BulletinAdapter parses police homicide bulletin pages: one long page of
// case narratives delimited by incident-date markers. Each delimited block
// becomes one candidate record.
type BulletinAdapter struct {
	BaseAdapter
	segmenter *extract.BlockSegmenter
	builder   *extract.RecordBuilder
}

// NewBulletinAdapter creates a bulletin adapter for the configured year
func NewBulletinAdapter(cfg model.ExtractConfig) *BulletinAdapter {
	return &BulletinAdapter{
		segmenter: extract.NewBlockSegmenter(cfg.TargetYear, cfg.MinBlockLen),
		builder:   extract.NewRecordBuilder(cfg),
	}
}

// Name returns the adapter name
func (a *BulletinAdapter) Name() string {
	return "bulletin"
}

// CanHandle matches police department bulletin hosts and paths
func (a *BulletinAdapter) CanHandle(url string, contentType string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "police.boston.gov") ||
		strings.Contains(lower, "bpdnews.com") ||
		strings.Contains(lower, "unsolved-homicides")
}

// ExtractRecords segments the page text on date markers and builds one
// record per block that passes validity
func (a *BulletinAdapter) ExtractRecords(doc *html.Node, url string) (Result, error) {
	text := extract.NodeText(doc)

	blocks := a.segmenter.Segment(text)
	records := make([]model.CaseRecord, 0, len(blocks))
	for i, block := range blocks {
		rec, ok := a.builder.Build(block, model.SourcePrimary)
		if !ok {
			continue
		}
		rec.Block = i
		records = append(records, rec)
	}

	return Result{Records: records, Candidates: len(blocks)}, nil
}
