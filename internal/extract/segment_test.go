package extract

import (
	"strings"
	"testing"
)

func TestBlockSegmenter_SplitsOnDateMarkers(t *testing.T) {
	seg := NewBlockSegmenter(2014, 100)

	filler := strings.Repeat("Investigators canvassed the area for witnesses. ", 3)
	text := "January 5, 2014 " + filler + "February 9, 2014 " + filler

	blocks := seg.Segment(text)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[0], "January 5, 2014") {
		t.Errorf("Expected first block to start with its date marker, got %q", blocks[0][:30])
	}
	if !strings.HasPrefix(blocks[1], "February 9, 2014") {
		t.Errorf("Expected second block to start with its date marker, got %q", blocks[1][:30])
	}
}

func TestBlockSegmenter_NoDateMarkers(t *testing.T) {
	seg := NewBlockSegmenter(2014, 100)

	text := "There are no incident dates anywhere in this text, only ordinary prose that runs on for a while without any markers."

	blocks := seg.Segment(text)
	if len(blocks) != 0 {
		t.Errorf("Expected 0 blocks for text without date markers, got %d", len(blocks))
	}
}

func TestBlockSegmenter_DropsShortBlocks(t *testing.T) {
	seg := NewBlockSegmenter(2014, 100)

	filler := strings.Repeat("Detectives continue to pursue leads in the case. ", 3)
	text := "January 5, 2014 too short. February 9, 2014 " + filler

	blocks := seg.Segment(text)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block after dropping the short one, got %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[0], "February 9, 2014") {
		t.Errorf("Expected surviving block to start with the second marker, got %q", blocks[0][:30])
	}
}

func TestBlockSegmenter_IgnoresOtherYears(t *testing.T) {
	seg := NewBlockSegmenter(2014, 100)

	filler := strings.Repeat("The case remains under active investigation by detectives. ", 3)
	text := "January 5, 2013 " + filler + "February 9, 2015 " + filler

	blocks := seg.Segment(text)
	if len(blocks) != 0 {
		t.Errorf("Expected 0 blocks for markers outside the target year, got %d", len(blocks))
	}
}
