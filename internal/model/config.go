package model

import "time"

// Config holds the complete pipeline configuration.
// Variant parameters that diverged across the original rewrites (thresholds,
// sentinel policy, pattern lists) are consolidated here as explicit settings.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Extract     ExtractConfig     `yaml:"extract"`
	Match       MatchConfig       `yaml:"match"`
	Geo         GeoConfig         `yaml:"geo"`
	Trust       TrustConfig       `yaml:"trust"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// HTTPConfig configures source fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig configures page and geocode caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ExtractConfig configures segmentation and field extraction
type ExtractConfig struct {
	TargetYear      int      `yaml:"target_year"`
	City            string   `yaml:"city"`
	MinBlockLen     int      `yaml:"min_block_len"`     // spans shorter than this are not blocks
	MinDescLen      int      `yaml:"min_desc_len"`      // below this the normalizer rebuilds
	MaxDescLen      int      `yaml:"max_desc_len"`      // truncation cap, ellipsis appended
	DescEvidenceLen int      `yaml:"desc_evidence_len"` // description length that alone validates a record
	Neighborhoods   []string `yaml:"neighborhoods"`
}

// MatchConfig configures cross-source matching
type MatchConfig struct {
	Threshold float64  `yaml:"threshold"` // pairs scoring at or below this are discarded
	Areas     []string `yaml:"areas"`     // the recognized area name set for location scoring
}

// GeoConfig configures optional coordinate resolution
type GeoConfig struct {
	Enabled           bool    `yaml:"enabled"`
	NominatimURL      string  `yaml:"nominatim_url"`
	CitySuffix        string  `yaml:"city_suffix"` // appended to queries, e.g. ", Boston, MA"
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// TrustConfig configures source host classification
type TrustConfig struct {
	OfficialDomains []string          `yaml:"official_domains"`
	NewsDomains     []string          `yaml:"news_domains"`
	DomainMap       map[string]string `yaml:"domain_map,omitempty"` // host -> tier override
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	Workers         int `yaml:"workers"`          // batch scan workers
	PrecheckWorkers int `yaml:"precheck_workers"` // concurrent page prechecks
}

// RateLimitConfig configures per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig configures the optional case brief generator
type LLMConfig struct {
	Provider      string `yaml:"provider"` // "openai", "anthropic", "ollama", "" = disabled
	Model         string `yaml:"model"`
	APIKey        string `yaml:"-"` // from environment only, never written to disk
	BaseURL       string `yaml:"base_url,omitempty"`
	Timeout       int    `yaml:"timeout"` // seconds
	StrictSources bool   `yaml:"strict_sources"`
	MaxTokens     int    `yaml:"max_tokens"`
	HTTPProxy     string `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string `yaml:"https_proxy,omitempty"`
	NoProxy       string `yaml:"no_proxy,omitempty"`
}

// DefaultConfig returns the canonical configuration: Boston bulletins for 2014.
// Every value here can be overridden by config file, env, or flags.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".coldtrail-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Extract: ExtractConfig{
			TargetYear:      2014,
			City:            "Boston",
			MinBlockLen:     100,
			MinDescLen:      50,
			MaxDescLen:      300,
			DescEvidenceLen: 100,
			Neighborhoods: []string{
				"roxbury", "dorchester", "mattapan", "south end", "back bay",
				"jamaica plain", "charlestown", "east boston", "south boston",
				"brighton", "allston", "fenway", "north end",
			},
		},
		Match: MatchConfig{
			Threshold: 0.2,
			Areas: []string{
				"boston", "roxbury", "dorchester", "mattapan", "south end",
				"jamaica plain", "charlestown", "east boston", "south boston",
			},
		},
		Geo: GeoConfig{
			Enabled:           false,
			NominatimURL:      "https://nominatim.openstreetmap.org/search",
			CitySuffix:        ", Boston, MA",
			RequestsPerSecond: 1,
		},
		Trust: TrustConfig{
			OfficialDomains: []string{"bpdnews.com", "boston.gov", "mass.gov"},
			NewsDomains:     []string{"bostonglobe.com", "bostonherald.com", "wbur.org"},
		},
		Concurrency: ConcurrencyConfig{
			Workers:         4,
			PrecheckWorkers: 10,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:      "", // disabled by default
			Timeout:       30,
			StrictSources: true,
			MaxTokens:     1000,
		},
	}
}
