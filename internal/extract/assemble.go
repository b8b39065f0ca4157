package extract

import (
	"github.com/ppiankov/coldtrail/internal/model"
)

// locations shorter than this carry no real evidence even when extracted
const minLocationLen = 5

// RecordBuilder turns one text block into a candidate CaseRecord by running
// every field extractor over it, then decides whether the candidate carries
// enough evidence to be a record at all.
type RecordBuilder struct {
	names        *NameExtractor
	ages         *AgeExtractor
	genders      *GenderExtractor
	dates        *DateExtractor
	locations    *LocationExtractor
	descriptions *DescriptionNormalizer
	evidenceLen  int
}

// NewRecordBuilder creates a builder wired to the extraction settings
func NewRecordBuilder(cfg model.ExtractConfig) *RecordBuilder {
	return &RecordBuilder{
		names:        NewNameExtractor(),
		ages:         NewAgeExtractor(),
		genders:      NewGenderExtractor(),
		dates:        NewDateExtractor(cfg.TargetYear),
		locations:    NewLocationExtractor(cfg.Neighborhoods),
		descriptions: NewDescriptionNormalizer(cfg.TargetYear, cfg.MinDescLen, cfg.MaxDescLen),
		evidenceLen:  cfg.DescEvidenceLen,
	}
}

// Build extracts a record from a block. The second return reports whether
// the record passed the validity check; callers must not keep invalid ones.
// An extracted-but-unparseable date leaves the Date field empty, so a record
// whose sole evidence was that date fails validity and is dropped.
func (b *RecordBuilder) Build(block string, source model.Source) (model.CaseRecord, bool) {
	name := b.names.Extract(block)

	rec := model.CaseRecord{
		Source:      source,
		VictimName:  name,
		Age:         b.ages.Extract(block),
		Gender:      b.genders.Extract(block),
		Location:    b.locations.Extract(block),
		Description: b.descriptions.Normalize(block, name),
	}

	if raw := b.dates.Extract(block); raw != "" {
		if display, ok := b.dates.Display(raw); ok {
			rec.Date = display
		}
	}

	return rec, ValidRecord(&rec, b.evidenceLen)
}

// ValidRecord requires name+date, a usable location+date, or a description
// long enough to stand as evidence on its own. Records failing all three
// never enter a canonical list.
func ValidRecord(rec *model.CaseRecord, evidenceLen int) bool {
	hasLocation := rec.HasLocation() && len(rec.Location) > minLocationLen
	hasDesc := len(rec.Description) > evidenceLen

	switch {
	case rec.HasName() && rec.HasDate():
		return true
	case hasLocation && rec.HasDate():
		return true
	case hasDesc:
		return true
	default:
		return false
	}
}
