package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source identifies which corpus a record was extracted from
type Source string

const (
	SourcePrimary   Source = "primary_bulletin"   // police homicide bulletins
	SourceSecondary Source = "secondary_database" // cold-case database pages
)

// Sentinel values stored when extraction finds nothing. Records never carry
// empty names or locations; absence is explicit.
const (
	UnknownName     = "Unknown"
	UnknownLocation = "unknown location"
)

// Gender is the extracted victim gender
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// CaseRecord is one structured case extracted from free text.
// Records are built once per pipeline run and never mutated after validation.
type CaseRecord struct {
	Source      Source `json:"source" yaml:"source"`
	VictimName  string `json:"victim_name" yaml:"victim_name"`       // UnknownName when not extracted
	Age         *int   `json:"age,omitempty" yaml:"age,omitempty"`   // always in [1,100] when present
	Gender      Gender `json:"gender" yaml:"gender"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"` // display form, e.g. "January 5, 2014"
	Location    string `json:"location" yaml:"location"`             // lowercased; UnknownLocation when not extracted
	Description string `json:"description" yaml:"description"`

	// Optional presentation fields, filled when geocoding is enabled
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`

	Block int `json:"block,omitempty" yaml:"block,omitempty"` // index of the source text block this came from
}

// Signature returns the dedup identity key. Two records with equal signatures
// describe the same underlying case.
func (r *CaseRecord) Signature() string {
	return strings.ToLower(r.VictimName + "|" + r.Location + "|" + r.Date)
}

// HasName reports whether a real name was extracted
func (r *CaseRecord) HasName() bool {
	return r.VictimName != "" && r.VictimName != UnknownName
}

// HasLocation reports whether a real location was extracted
func (r *CaseRecord) HasLocation() bool {
	return r.Location != "" && r.Location != UnknownLocation
}

// HasDate reports whether a date was extracted
func (r *CaseRecord) HasDate() bool {
	return r.Date != ""
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Year returns the first plausible calendar year in the record's date field
func (r *CaseRecord) Year() (int, bool) {
	match := yearPattern.FindString(r.Date)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// ParsedDate converts the display date to a calendar date for comparison
func (r *CaseRecord) ParsedDate() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("January 2, 2006", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
