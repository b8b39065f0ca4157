package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/coldtrail/internal/cache"
	"github.com/ppiankov/coldtrail/internal/extract"
	"github.com/ppiankov/coldtrail/internal/extract/adapters"
	"github.com/ppiankov/coldtrail/internal/geo"
	"github.com/ppiankov/coldtrail/internal/llm"
	"github.com/ppiankov/coldtrail/internal/match"
	"github.com/ppiankov/coldtrail/internal/model"
	"github.com/ppiankov/coldtrail/internal/stats"
	"github.com/ppiankov/coldtrail/internal/util"
	"github.com/ppiankov/coldtrail/internal/validate"
	"golang.org/x/net/html"
)

// crawlDelaySleep is replaceable for tests
var crawlDelaySleep = time.Sleep

// maxCrawlDelay caps robots.txt Crawl-delay so a hostile value cannot stall
// a scan indefinitely
const maxCrawlDelay = 10 * time.Second

// Pipeline orchestrates the complete scan and cross-check process
type Pipeline struct {
	fetcher  *Fetcher
	robots   *util.RobotsChecker // nil when robots.txt checks are disabled
	checker  *validate.Checker
	registry *adapters.Registry
	matcher  *match.Matcher
	trust    *validate.TrustClassifier
	analyzer *stats.Analyzer
	geocoder *geo.Geocoder // nil when geocoding is disabled
	briefer  *llm.Briefer  // nil when no LLM provider is configured
	renderer *Renderer
	store    cache.Cache // nil when caching is disabled
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	store := cache.FromConfig(cfg.Cache)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second)
	}

	var geocoder *geo.Geocoder
	if cfg.Geo.Enabled {
		geocoder = geo.NewGeocoder(cfg.Geo, cfg.HTTP.UserAgent, store)
	}

	// Create the LLM briefer if configured
	var briefer *llm.Briefer
	if cfg.LLM.Provider != "" {
		b, err := llm.NewBriefer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			briefer = b
		}
	}

	return &Pipeline{
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		robots: robots,
		checker: validate.NewChecker(10*time.Second, cfg.Concurrency.PrecheckWorkers,
			cfg.HTTP.UserAgent, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		registry: adapters.NewRegistry(cfg.Extract),
		matcher:  match.NewMatcher(cfg.Extract.TargetYear, cfg.Match),
		trust:    validate.NewTrustClassifier(cfg.Trust),
		analyzer: stats.NewAnalyzer(cfg.Extract.Neighborhoods),
		geocoder: geocoder,
		briefer:  briefer,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		store:    store,
		config:   cfg,
	}
}

// cachedPage is the on-disk shape of a fetched source page
type cachedPage struct {
	HTML     string          `json:"html"`
	Meta     model.FetchMeta `json:"meta"`
	Subject  string          `json:"subject"`
	FinalURL string          `json:"final_url"`
}

// ScanSource fetches one source page and extracts its canonical record list.
//
// The steps run in a fixed order: robots gate, availability precheck, fetch
// (cache first), adapter extraction, dedup, statistics, trust classification,
// and optional geocoding. Extraction misses are normal; only transport and
// parse failures surface as errors.
func (p *Pipeline) ScanSource(ctx context.Context, url string, source model.Source) (*model.SourceReport, error) {
	var warnings []string

	// 1. Robots gate
	if p.robots != nil {
		allowed, delay, err := p.robots.CanFetch(ctx, url)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("robots.txt check failed: %v", err))
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", url)
		}
		if delay > 0 {
			if delay > maxCrawlDelay {
				delay = maxCrawlDelay
			}
			crawlDelaySleep(delay)
		}
	}

	// 2. Availability precheck (advisory: recorded, never blocking)
	pages := p.checker.Precheck(ctx, []string{url})
	if len(pages) > 0 && !pages[0].Accessible {
		warnings = append(warnings, fmt.Sprintf("precheck: source page not accessible: %s", pages[0].Error))
	}

	// 3. Page body, from cache when possible
	page, fromCache, err := p.fetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if fromCache && p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ cache hit: %s\n", url)
	}

	// 4. Extract records through the source adapter
	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	adapter := p.registry.FindAdapter(url, page.Meta.ContentType)
	result, err := adapter.ExtractRecords(doc, page.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract records (%s): %w", adapter.Name(), err)
	}

	// Adapters only parse; the pipeline owns the source label
	for i := range result.Records {
		result.Records[i].Source = source
	}

	// 5. Deduplicate into the canonical list
	canonical := extract.Dedupe(result.Records)
	duplicates := len(result.Records) - len(canonical)

	// 6. Optional geocoding (presentation only)
	if p.geocoder != nil {
		p.geocoder.Annotate(ctx, canonical)
	}

	if len(canonical) == 0 {
		warnings = append(warnings, "no records extracted from source")
	}

	return &model.SourceReport{
		Source:     source,
		URL:        url,
		Subject:    page.Subject,
		FetchedAt:  time.Now().UTC(),
		FetchMeta:  page.Meta,
		Trust:      p.trust.Classify(url),
		Pages:      pages,
		Blocks:     result.Candidates,
		Dropped:    result.Candidates - len(result.Records),
		Duplicates: duplicates,
		Records:    canonical,
		Stats:      p.analyzer.Compute(canonical),
		Warnings:   warnings,
	}, nil
}

// ScanURL scans a single URL, inferring the source kind from the adapter
// that claims it. This satisfies the batch scanner contract.
func (p *Pipeline) ScanURL(ctx context.Context, url string) (*model.SourceReport, error) {
	return p.ScanSource(ctx, url, p.sourceForURL(url))
}

// sourceForURL maps a URL to its source label via adapter detection
func (p *Pipeline) sourceForURL(url string) model.Source {
	if p.registry.FindAdapter(url, "").Name() == "archive" {
		return model.SourceSecondary
	}
	return model.SourcePrimary
}

// CrossCheck scans both sources and correlates their canonical record lists.
//
// A failed source never fails the run: the report carries an empty record
// list with a warning for that side, and matching proceeds over whatever was
// extracted. The optional LLM brief runs last and can only add warnings.
func (p *Pipeline) CrossCheck(ctx context.Context, bulletinURL, archiveURL string) (*model.Report, error) {
	bulletin := p.scanOrEmpty(ctx, bulletinURL, model.SourcePrimary)
	archive := p.scanOrEmpty(ctx, archiveURL, model.SourceSecondary)

	report := &model.Report{
		Bulletin:    *bulletin,
		Archive:     *archive,
		TargetYear:  p.config.Extract.TargetYear,
		Threshold:   p.config.Match.Threshold,
		Matches:     p.matcher.Match(bulletin.Records, archive.Records),
		GeneratedAt: time.Now().UTC(),
	}

	// Generate the LLM brief if enabled (AFTER matching, never affects scores)
	if p.briefer != nil && p.briefer.IsEnabled() {
		brief, err := p.briefer.GenerateBrief(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM brief generation failed: %v\n", err)
		} else if brief != nil {
			report.Brief = brief
		}
	}

	return report, nil
}

// scanOrEmpty degrades a failed source scan to an empty report with a warning
func (p *Pipeline) scanOrEmpty(ctx context.Context, url string, source model.Source) *model.SourceReport {
	report, err := p.ScanSource(ctx, url, source)
	if err == nil {
		return report
	}

	fmt.Fprintf(os.Stderr, "Warning: scan failed for %s: %v\n", url, err)
	return &model.SourceReport{
		Source:    source,
		URL:       url,
		FetchedAt: time.Now().UTC(),
		Trust:     p.trust.Classify(url),
		Warnings:  []string{fmt.Sprintf("scan failed: %v", err)},
	}
}

// fetchPage returns the page body for a URL, consulting the cache first
func (p *Pipeline) fetchPage(ctx context.Context, url string) (*cachedPage, bool, error) {
	key := cache.CacheKey(url)

	if p.store != nil {
		if raw, found := p.store.Get(key); found {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return &page, true, nil
			}
		}
	}

	result, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, false, err
	}

	page := &cachedPage{
		HTML:     result.HTML,
		Meta:     result.Meta,
		Subject:  result.Subject,
		FinalURL: result.FinalURL,
	}

	if p.store != nil {
		if raw, err := json.Marshal(page); err == nil {
			_ = p.store.Set(key, raw, 0) // default TTL
		}
	}

	return page, false, nil
}

// RenderReport renders the cross-check report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath, yamlPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if yamlPath != "" {
		if err := p.renderer.RenderYAML(report, yamlPath); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote YAML: %s\n", yamlPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// The brief goes to its own file so generated text stays out of the report
	if report.Brief != nil && report.Brief.Enabled && mdPath != "" {
		briefPath := strings.TrimSuffix(mdPath, ".md") + ".brief.md"
		briefMarkdown := llm.RenderBriefMarkdown(report.Brief)
		if err := p.renderer.WriteBriefFile(briefMarkdown, briefPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM brief: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Brief: %s\n", briefPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}

// RenderSourceReport renders a single-source scan to the configured outputs
func (p *Pipeline) RenderSourceReport(report *model.SourceReport, jsonPath, mdPath, yamlPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if yamlPath != "" {
		if err := p.renderer.RenderYAML(report, yamlPath); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote YAML: %s\n", yamlPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderSourceMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSourceSummary(report)

	return nil
}
