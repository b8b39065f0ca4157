package model

import "time"

// Report is the complete cross-reference report: one bulletin source checked
// against one cold-case database source. Coldtrail surfaces textual
// correspondence between records; it never asserts that two records are the
// same person or case.
type Report struct {
	Bulletin SourceReport `json:"bulletin" yaml:"bulletin"`
	Archive  SourceReport `json:"archive" yaml:"archive"`

	TargetYear int     `json:"target_year" yaml:"target_year"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`

	Matches []MatchCandidate `json:"matches" yaml:"matches"` // sorted by score, descending

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Brief *CaseBrief `json:"brief,omitempty" yaml:"brief,omitempty"` // optional LLM brief (separate, never affects scores)
}

// SourceReport is the result of scanning a single source
type SourceReport struct {
	Source    Source    `json:"source" yaml:"source"`
	URL       string    `json:"url" yaml:"url"`
	Subject   string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta" yaml:"fetch_meta"`
	Trust     TrustTier `json:"trust" yaml:"trust"`

	Pages []PageStatus `json:"pages,omitempty" yaml:"pages,omitempty"` // precheck results for candidate pages

	Blocks     int `json:"blocks" yaml:"blocks"`         // candidate blocks after segmentation
	Dropped    int `json:"dropped" yaml:"dropped"`       // blocks that failed the validity rule
	Duplicates int `json:"duplicates" yaml:"duplicates"` // records collapsed by deduplication

	Records []CaseRecord `json:"records" yaml:"records"` // the canonical record list
	Stats   CaseStats    `json:"stats" yaml:"stats"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code" yaml:"status_code"`
	ContentType  string            `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty" yaml:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// MatchCandidate is a scored pairing between a bulletin record and an archive
// record. Immutable after construction; Reasons is rebuilt from the same
// comparisons that produced Score, one reason per nonzero scoring rule.
type MatchCandidate struct {
	IndexA  int        `json:"index_a" yaml:"index_a"` // index into the bulletin canonical list
	IndexB  int        `json:"index_b" yaml:"index_b"` // index into the archive canonical list
	RecordA CaseRecord `json:"record_a" yaml:"record_a"`
	RecordB CaseRecord `json:"record_b" yaml:"record_b"`

	Score      float64  `json:"score" yaml:"score"`           // additive contributions clamped to [0,1]
	Confidence string   `json:"confidence" yaml:"confidence"` // "high", "moderate", "low"; presentation only
	Reasons    []string `json:"reasons" yaml:"reasons"`
}

// Confidence tier boundaries for match candidates
const (
	ConfidenceHighMin     = 0.7
	ConfidenceModerateMin = 0.4
)

// ConfidenceTier maps a match score to its presentation tier
func ConfidenceTier(score float64) string {
	switch {
	case score >= ConfidenceHighMin:
		return "high"
	case score >= ConfidenceModerateMin:
		return "moderate"
	default:
		return "low"
	}
}

// TrustTier classifies a source host. Presentation only: records from all
// tiers are extracted and matched identically.
type TrustTier string

const (
	TrustOfficial TrustTier = "official" // police departments, .gov, .mil
	TrustNews     TrustTier = "news"
	TrustUnknown  TrustTier = "unknown"
)

// PageStatus is the precheck result for one candidate source page
type PageStatus struct {
	URL          string     `json:"url" yaml:"url"`
	StatusCode   int        `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Accessible   bool       `json:"accessible" yaml:"accessible"`
	RedirectURL  string     `json:"redirect_url,omitempty" yaml:"redirect_url,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Error        string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// CaseStats summarizes a canonical record list. All fields are zero-safe:
// an empty list produces zero values, never a panic.
type CaseStats struct {
	Total int `json:"total" yaml:"total"`

	Genders   map[Gender]int     `json:"genders,omitempty" yaml:"genders,omitempty"`
	GenderPct map[Gender]float64 `json:"gender_pct,omitempty" yaml:"gender_pct,omitempty"`

	AgeKnown   int     `json:"age_known" yaml:"age_known"`
	AgeAverage float64 `json:"age_average,omitempty" yaml:"age_average,omitempty"`
	AgeMedian  float64 `json:"age_median,omitempty" yaml:"age_median,omitempty"`
	AgeMin     int     `json:"age_min,omitempty" yaml:"age_min,omitempty"`
	AgeMax     int     `json:"age_max,omitempty" yaml:"age_max,omitempty"`

	AgeGroups map[string]int `json:"age_groups,omitempty" yaml:"age_groups,omitempty"`
	Monthly   map[string]int `json:"monthly,omitempty" yaml:"monthly,omitempty"`
	PeakMonth string         `json:"peak_month,omitempty" yaml:"peak_month,omitempty"`
	Seasons   map[string]int `json:"seasons,omitempty" yaml:"seasons,omitempty"`

	Locations map[string]int `json:"locations,omitempty" yaml:"locations,omitempty"` // location -> case count
	Hotspots  map[string]int `json:"hotspots,omitempty" yaml:"hotspots,omitempty"`   // neighborhood -> case count

	Completeness map[string]float64 `json:"completeness,omitempty" yaml:"completeness,omitempty"` // field -> percent populated

	Insights []string `json:"insights,omitempty" yaml:"insights,omitempty"`
}

// CaseBrief contains the optional LLM-generated brief of a match report.
// CRITICAL: this never affects matching or scoring and is clearly separated.
type CaseBrief struct {
	Enabled       bool     `json:"enabled" yaml:"enabled"`
	Provider      string   `json:"provider,omitempty" yaml:"provider,omitempty"` // openai, anthropic, ollama
	Model         string   `json:"model,omitempty" yaml:"model,omitempty"`
	StrictSources bool     `json:"strict_sources" yaml:"strict_sources"` // whether citation enforcement was enabled
	BriefMD       string   `json:"brief_md,omitempty" yaml:"brief_md,omitempty"`
	Warnings      []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
