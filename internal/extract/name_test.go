package extract

import (
	"testing"

	"github.com/ppiankov/coldtrail/internal/model"
)

func TestNameExtractor_IdentifiedAs(t *testing.T) {
	e := NewNameExtractor()

	text := "The victim was later identified as John Smith, 30, and was pronounced deceased."
	name := e.Extract(text)
	if name != "John Smith" {
		t.Errorf("Expected 'John Smith', got %q", name)
	}
}

func TestNameExtractor_IdentifiedAsUpperCase(t *testing.T) {
	e := NewNameExtractor()

	text := "The victim was later identified as JOHN SMITH, 30, and was pronounced deceased."
	name := e.Extract(text)
	if name != "John Smith" {
		t.Errorf("Expected title-cased 'John Smith', got %q", name)
	}
}

func TestNameExtractor_BodyOf(t *testing.T) {
	e := NewNameExtractor()

	text := "Officers discovered the body of Marcus Webb, a longtime resident of the neighborhood."
	name := e.Extract(text)
	if name != "Marcus Webb" {
		t.Errorf("Expected 'Marcus Webb', got %q", name)
	}
}

func TestNameExtractor_VictimNamed(t *testing.T) {
	e := NewNameExtractor()

	text := "Neighbors said the victim Maria Lopez was found inside her apartment."
	name := e.Extract(text)
	if name != "Maria Lopez" {
		t.Errorf("Expected 'Maria Lopez', got %q", name)
	}
}

func TestNameExtractor_LeadingCapsFallback(t *testing.T) {
	e := NewNameExtractor()

	text := "Derek Johnson 45 Winthrop Street died from injuries sustained in the incident."
	name := e.Extract(text)
	if name != "Derek Johnson" {
		t.Errorf("Expected 'Derek Johnson', got %q", name)
	}
}

func TestNameExtractor_BlocklistedCaptureFallsThrough(t *testing.T) {
	e := NewNameExtractor()

	// "Boston Police" is a valid capture shape for the first strategy but
	// contains blocklisted words, so the cascade must keep going and
	// ultimately give up.
	text := "The victim was identified as Boston Police, 30, according to a garbled report."
	name := e.Extract(text)
	if name != model.UnknownName {
		t.Errorf("Expected %q, got %q", model.UnknownName, name)
	}
}

func TestNameExtractor_NoMatch(t *testing.T) {
	e := NewNameExtractor()

	text := "no names appear anywhere in this text at all."
	name := e.Extract(text)
	if name != model.UnknownName {
		t.Errorf("Expected %q, got %q", model.UnknownName, name)
	}
}

func TestNameExtractor_MonthNameRejected(t *testing.T) {
	e := NewNameExtractor()

	text := "January Fifth marked the start of a difficult week for investigators working the case."
	name := e.Extract(text)
	if name != model.UnknownName {
		t.Errorf("Expected month-name capture to be rejected, got %q", name)
	}
}
