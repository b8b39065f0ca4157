package extract

import "testing"

func TestDateExtractor_Extract(t *testing.T) {
	e := NewDateExtractor(2014)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"month name", "On January 5, 2014, police responded to the scene.", "January 5, 2014"},
		{"month name no comma", "The incident on March 12 2014 remains unsolved.", "March 12 2014"},
		{"slash form", "Report filed 1/5/2014 by the responding officer.", "1/5/2014"},
		{"dash form", "Logged as 3-15-2014 in the case file.", "3-15-2014"},
		{"no date", "No incident date appears in this text.", ""},
		{"wrong year", "On January 5, 2013, an unrelated case was opened.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.text); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDateExtractor_Display(t *testing.T) {
	e := NewDateExtractor(2014)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"already canonical", "January 5, 2014", "January 5, 2014", true},
		{"missing year", "January 5", "January 5, 2014", true},
		{"no comma", "March 12 2014", "March 12, 2014", true},
		{"slash form", "1/5/2014", "January 5, 2014", true},
		{"dash form", "3-15-2014", "March 15, 2014", true},
		{"all caps month", "JANUARY 5, 2014", "January 5, 2014", true},
		{"other year kept", "august 14, 2003", "August 14, 2003", true},
		{"iso form", "1998-03-12", "March 12, 1998", true},
		{"garbage", "not a date", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Display(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got ok=%v (value %q)", tt.ok, ok, got)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
