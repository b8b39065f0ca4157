package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/coldtrail/internal/llm"
	"github.com/ppiankov/coldtrail/internal/model"
	"github.com/ppiankov/coldtrail/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	outYAML     string
	scanYear    int
	sourceKind  string
	geocode     bool
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	noProxy     string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a single source page and extract case records",
	Long: `Scan fetches one bulletin or archive page to:
- Segment free text into per-case candidate blocks
- Extract victim name, age, gender, date, and location from each block
- Deduplicate records into a canonical list
- Compute demographic, temporal, and location statistics
- Generate transparent, explainable reports

Example:
  coldtrail scan https://bpdnews.com/2014-cold-cases
  coldtrail scan https://example.com/bulletins --json report.json --md report.md
  coldtrail scan https://example.com/cold-cases --source archive --year 2010`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path (optional)")

	// Extraction flags
	scanCmd.Flags().IntVar(&scanYear, "year", 0, "target year for extraction (default: config value)")
	scanCmd.Flags().StringVar(&sourceKind, "source", "auto", "source kind: bulletin, archive, or auto (detect from URL)")
	scanCmd.Flags().BoolVar(&geocode, "geocode", false, "resolve record locations to coordinates")

	// HTTP flags
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	scanCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	scanCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	scanCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	scanCmd.Flags().StringVar(&noProxy, "no-proxy", "", "comma-separated hosts to bypass the proxy")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM case brief generation")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles the pipeline configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.NoProxy = noProxy
	cfg.Cache.Enabled = !noCache
	cfg.Geo.Enabled = geocode
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if scanYear != 0 {
		if scanYear < 1900 || scanYear > 2100 {
			return nil, fmt.Errorf("implausible target year: %d", scanYear)
		}
		cfg.Extract.TargetYear = scanYear
	}

	if llmEnabled {
		if err := applyLLMFlags(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyLLMFlags configures the brief generator. API keys come from the
// environment only; they are never read from config files.
func applyLLMFlags(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictSources = true // Always enforce

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = llm.APIKeyFromEnv(llmProvider)
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set (COLDTRAIL_LLM_API_KEY also accepted)")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = llm.APIKeyFromEnv(llmProvider)
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set (COLDTRAIL_LLM_API_KEY also accepted)")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", llmProvider)
	}

	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching HTML...\n")
	}

	var report *model.SourceReport
	switch sourceKind {
	case "bulletin":
		report, err = p.ScanSource(ctx, url, model.SourcePrimary)
	case "archive":
		report, err = p.ScanSource(ctx, url, model.SourceSecondary)
	case "auto", "":
		report, err = p.ScanURL(ctx, url)
	default:
		return fmt.Errorf("unknown source kind: %s (supported: bulletin, archive, auto)", sourceKind)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d records (%d blocks, %d dropped, %d duplicates collapsed)\n",
			len(report.Records), report.Blocks, report.Dropped, report.Duplicates)
		for _, warning := range report.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", warning)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderSourceReport(report, outJSON, outMD, outYAML, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
