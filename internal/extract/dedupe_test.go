package extract

import (
	"testing"

	"github.com/ppiankov/coldtrail/internal/model"
)

func TestDedupe_CollapsesSameSignature(t *testing.T) {
	records := []model.CaseRecord{
		{VictimName: "Maria Lopez", Location: "dorchester", Date: "January 5, 2014", Block: 0},
		{VictimName: "Maria Lopez", Location: "dorchester", Date: "January 5, 2014", Block: 7},
		{VictimName: "James Carter", Location: "mattapan", Date: "March 18, 2014", Block: 1},
	}

	unique := Dedupe(records)
	if len(unique) != 2 {
		t.Fatalf("Expected 2 unique records, got %d", len(unique))
	}
	if unique[0].Block != 0 {
		t.Errorf("Expected first occurrence kept, got block %d", unique[0].Block)
	}
	if unique[1].VictimName != "James Carter" {
		t.Errorf("Expected order preserved, got %q second", unique[1].VictimName)
	}
}

func TestDedupe_SignatureIsCaseInsensitive(t *testing.T) {
	records := []model.CaseRecord{
		{VictimName: "Maria Lopez", Location: "Dorchester", Date: "January 5, 2014"},
		{VictimName: "MARIA LOPEZ", Location: "dorchester", Date: "January 5, 2014"},
	}

	unique := Dedupe(records)
	if len(unique) != 1 {
		t.Fatalf("Expected 1 unique record, got %d", len(unique))
	}
	if unique[0].VictimName != "Maria Lopez" {
		t.Errorf("Expected first casing kept, got %q", unique[0].VictimName)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	records := []model.CaseRecord{
		{VictimName: "Maria Lopez", Location: "dorchester", Date: "January 5, 2014"},
		{VictimName: "Maria Lopez", Location: "dorchester", Date: "January 5, 2014"},
		{VictimName: "James Carter", Location: "mattapan", Date: "March 18, 2014"},
	}

	once := Dedupe(records)
	twice := Dedupe(once)
	if len(once) != len(twice) {
		t.Fatalf("Expected idempotent dedupe, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Signature() != twice[i].Signature() {
			t.Errorf("Record %d changed between passes", i)
		}
	}
}

func TestDedupe_EmptyInput(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Expected no records, got %d", len(got))
	}
}
