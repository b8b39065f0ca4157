package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/coldtrail/internal/pipeline"
	"github.com/spf13/cobra"
)

var matchThreshold float64

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <bulletin-url> <archive-url>",
	Short: "Cross-reference a bulletin page against a cold-case archive page",
	Long: `Match scans both sources, extracts case records from each, and scores
every bulletin/archive record pair for textual correspondence: name
similarity, age proximity, location overlap, and date windows.

Pairs scoring above the threshold become match candidates, ranked by
score with per-pair reasons. A candidate is a lead for human review,
never an identification.

Example:
  coldtrail match https://bpdnews.com/2014-cold-cases https://example.org/unsolved
  coldtrail match https://bpdnews.com/bulletins https://example.org/archive --threshold 0.4
  coldtrail match https://bpdnews.com/bulletins https://example.org/archive --llm --md report.md`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	// Matching flags
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", 0, "minimum match score (default: config value)")

	// Output flags
	matchCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	matchCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	matchCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path (optional)")

	// Extraction flags
	matchCmd.Flags().IntVar(&scanYear, "year", 0, "target year for extraction (default: config value)")
	matchCmd.Flags().BoolVar(&geocode, "geocode", false, "resolve record locations to coordinates")

	// HTTP flags
	matchCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall cross-check timeout")
	matchCmd.Flags().StringVar(&userAgent, "ua", "Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)", "HTTP User-Agent")
	matchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	matchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	matchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	matchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	matchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	matchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	matchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	matchCmd.Flags().StringVar(&noProxy, "no-proxy", "", "comma-separated hosts to bypass the proxy")

	// LLM flags
	matchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM case brief generation")
	matchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	matchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runMatch(cmd *cobra.Command, args []string) error {
	bulletinURL, archiveURL := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if matchThreshold != 0 {
		if matchThreshold < 0 || matchThreshold > 1 {
			return fmt.Errorf("threshold must be in (0, 1], got %.2f", matchThreshold)
		}
		cfg.Match.Threshold = matchThreshold
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Bulletin: %s\n", bulletinURL)
		fmt.Fprintf(os.Stderr, "Archive:  %s\n", archiveURL)
		fmt.Fprintf(os.Stderr, "Threshold: %.2f\n", cfg.Match.Threshold)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.CrossCheck(ctx, bulletinURL, archiveURL)
	if err != nil {
		return fmt.Errorf("cross-check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Bulletin records: %d\n", len(report.Bulletin.Records))
		fmt.Fprintf(os.Stderr, "✓ Archive records:  %d\n", len(report.Archive.Records))
		fmt.Fprintf(os.Stderr, "✓ Match candidates: %d\n", len(report.Matches))
		for _, warning := range report.Bulletin.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ bulletin: %s\n", warning)
		}
		for _, warning := range report.Archive.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ archive: %s\n", warning)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, outYAML, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
