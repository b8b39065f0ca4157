package adapters

import (
	"github.com/ppiankov/coldtrail/internal/extract"
	"github.com/ppiankov/coldtrail/internal/model"
	"golang.org/x/net/html"
)

// GenericAdapter is the fallback adapter for unknown domains. It applies
// bulletin-style parsing: segment the page text on date markers and build
// a record per block.
type GenericAdapter struct {
	BaseAdapter
	segmenter *extract.BlockSegmenter
	builder   *extract.RecordBuilder
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter(cfg model.ExtractConfig) *GenericAdapter {
	return &GenericAdapter{
		segmenter: extract.NewBlockSegmenter(cfg.TargetYear, cfg.MinBlockLen),
		builder:   extract.NewRecordBuilder(cfg),
	}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(url string, contentType string) bool {
	return true
}

// ExtractRecords delegates to the bulletin-style segmenter and builder
func (a *GenericAdapter) ExtractRecords(doc *html.Node, url string) (Result, error) {
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
