package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/coldtrail/internal/model"
)

func TestRecordBuilder_Build_FullRecord(t *testing.T) {
	block := "January 5, 2014 Officers responded to 45 Main Street in Dorchester. " +
		"The victim was later identified as Maria Lopez, 29, and was pronounced deceased. " +
		"Detectives continue to investigate the circumstances of the shooting."

	builder := NewRecordBuilder(model.DefaultConfig().Extract)
	rec, ok := builder.Build(block, model.SourcePrimary)
	if !ok {
		t.Fatal("Expected a valid record")
	}

	if rec.VictimName != "Maria Lopez" {
		t.Errorf("Expected name 'Maria Lopez', got %q", rec.VictimName)
	}
	if rec.Age == nil || *rec.Age != 29 {
		t.Errorf("Expected age 29, got %v", rec.Age)
	}
	if rec.Date != "January 5, 2014" {
		t.Errorf("Expected date 'January 5, 2014', got %q", rec.Date)
	}
	if !strings.Contains(rec.Location, "dorchester") {
		t.Errorf("Expected location to contain 'dorchester', got %q", rec.Location)
	}
	if !strings.Contains(rec.Description, "29-year-old") {
		t.Errorf("Expected rewritten identification in description, got %q", rec.Description)
	}
	if rec.Source != model.SourcePrimary {
		t.Errorf("Expected primary source, got %q", rec.Source)
	}
}

func TestRecordBuilder_Build_UnparseableDateDropped(t *testing.T) {
	// The date marker matches but names a day that does not exist, and the
	// block carries nothing else, so the record must fail validity.
	block := "February 30, 2014 brief note."

	builder := NewRecordBuilder(model.DefaultConfig().Extract)
	rec, ok := builder.Build(block, model.SourcePrimary)
	if ok {
		t.Fatal("Expected record to fail validity")
	}
	if rec.Date != "" {
		t.Errorf("Expected empty date for unparseable marker, got %q", rec.Date)
	}
}

func TestRecordBuilder_Build_DescriptionAloneSuffices(t *testing.T) {
	// No name, no date, no known location; the narrative itself is the
	// only evidence and is long enough to count.
	block := "Late in the evening, a dispute near the corner market escalated into gunfire " +
		"and a man died at the scene. Residents heard several shots and called police, " +
		"and detectives canvassed the area for cameras."

	builder := NewRecordBuilder(model.DefaultConfig().Extract)
	rec, ok := builder.Build(block, model.SourcePrimary)
	if !ok {
		t.Fatal("Expected a valid record on description evidence alone")
	}

	if rec.VictimName != model.UnknownName {
		t.Errorf("Expected unknown name, got %q", rec.VictimName)
	}
	if rec.Date != "" {
		t.Errorf("Expected no date, got %q", rec.Date)
	}
	if rec.Location != model.UnknownLocation {
		t.Errorf("Expected unknown location, got %q", rec.Location)
	}
}

func TestValidRecord_Combinations(t *testing.T) {
	tests := []struct {
		name  string
		rec   model.CaseRecord
		valid bool
	}{
		{
			name:  "name and date",
			rec:   model.CaseRecord{VictimName: "John Doe", Date: "January 5, 2014", Location: model.UnknownLocation},
			valid: true,
		},
		{
			name:  "location and date",
			rec:   model.CaseRecord{VictimName: model.UnknownName, Date: "January 5, 2014", Location: "roxbury"},
			valid: true,
		},
		{
			name:  "location too short to count",
			rec:   model.CaseRecord{VictimName: model.UnknownName, Date: "January 5, 2014", Location: "ma"},
			valid: false,
		},
		{
			name:  "long description alone",
			rec:   model.CaseRecord{VictimName: model.UnknownName, Location: model.UnknownLocation, Description: strings.Repeat("x", 101)},
			valid: true,
		},
		{
			name:  "name without date",
			rec:   model.CaseRecord{VictimName: "John Doe", Location: model.UnknownLocation},
			valid: false,
		},
		{
			name:  "nothing at all",
			rec:   model.CaseRecord{VictimName: model.UnknownName, Location: model.UnknownLocation},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRecord(&tt.rec, 100); got != tt.valid {
				t.Errorf("Expected valid=%v, got %v", tt.valid, got)
			}
		})
	}
}
