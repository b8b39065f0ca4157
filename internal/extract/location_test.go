package extract

import (
	"testing"

	"github.com/ppiankov/coldtrail/internal/model"
)

var testNeighborhoods = []string{
	"roxbury", "dorchester", "mattapan", "south end", "back bay",
	"jamaica plain", "charlestown", "east boston", "south boston",
	"brighton", "allston", "fenway", "north end",
}

func TestLocationExtractor_StreetAddress(t *testing.T) {
	e := NewLocationExtractor(testNeighborhoods)

	loc := e.Extract("Officers responded to 45 Main Street shortly after midnight.")
	if loc != "45 main street" {
		t.Errorf("Expected '45 main street', got %q", loc)
	}
}

func TestLocationExtractor_StreetWithNeighborhood(t *testing.T) {
	e := NewLocationExtractor(testNeighborhoods)

	loc := e.Extract("The victim was pronounced deceased at 45 Main Street, Dorchester.")
	if loc != "45 main street, dorchester" {
		t.Errorf("Expected '45 main street, dorchester', got %q", loc)
	}
}

func TestLocationExtractor_NeighborhoodOnly(t *testing.T) {
	e := NewLocationExtractor(testNeighborhoods)

	loc := e.Extract("The shooting occurred in Mattapan late Saturday night.")
	if loc != "mattapan" {
		t.Errorf("Expected 'mattapan', got %q", loc)
	}
}

func TestLocationExtractor_NeighborhoodListOrder(t *testing.T) {
	e := NewLocationExtractor(testNeighborhoods)

	// Both names appear; list order decides.
	loc := e.Extract("Witnesses in Mattapan and Roxbury reported gunfire.")
	if loc != "roxbury" {
		t.Errorf("Expected 'roxbury' by list order, got %q", loc)
	}
}

func TestLocationExtractor_NoMatch(t *testing.T) {
	e := NewLocationExtractor(testNeighborhoods)

	loc := e.Extract("The report gives no usable address.")
	if loc != model.UnknownLocation {
		t.Errorf("Expected %q, got %q", model.UnknownLocation, loc)
	}
}
