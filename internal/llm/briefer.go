package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// Briefer generates the optional LLM case brief for a cross-check report.
// The brief is presentation only: records, scores, and match candidates are
// computed before the LLM is ever consulted, and a failed brief never fails
// the run.
type Briefer struct {
	provider Provider
	config   Config
}

// NewBriefer creates a briefer from configuration. An empty provider yields
// a disabled briefer, not an error.
func NewBriefer(config Config) (*Briefer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Briefer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (b *Briefer) IsEnabled() bool {
	return b.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (b *Briefer) ProviderName() string {
	if b.provider == nil {
		return ""
	}
	return b.provider.Name()
}

// GenerateBrief produces the case brief for a report. Degradation is
// graceful: disabled returns (nil, nil), and an unreachable provider or a
// generation error returns a brief carrying warnings instead of an error.
func (b *Briefer) GenerateBrief(ctx context.Context, report model.Report) (*model.CaseBrief, error) {
	if b.provider == nil {
		return nil, nil
	}

	if !b.provider.IsAvailable(ctx) {
		return &model.CaseBrief{
			Enabled:  false,
			Provider: b.provider.Name(),
			Warnings: []string{
				fmt.Sprintf("LLM provider %s is not available, brief skipped", b.provider.Name()),
			},
		}, nil
	}

	resp, err := b.provider.WriteBrief(ctx, BriefRequest{
		Report:     report,
		SourceURLs: sourceAllowlist(report),
		Model:      b.config.Model,
		MaxTokens:  b.config.MaxTokens,
	})
	if err != nil {
		return &model.CaseBrief{
			Enabled:       true,
			Provider:      b.provider.Name(),
			Model:         b.config.Model,
			StrictSources: b.config.StrictSources,
			Warnings: []string{
				fmt.Sprintf("Brief generation failed: %v", err),
			},
		}, nil
	}

	return &model.CaseBrief{
		Enabled:       true,
		Provider:      b.provider.Name(),
		Model:         resp.Model,
		StrictSources: b.config.StrictSources,
		BriefMD:       resp.Brief,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
			fmt.Sprintf("Verified %d citations against the source allowlist", len(resp.CitedURLs)),
		},
	}, nil
}

// sourceAllowlist is the citation allowlist: exactly the scanned source URLs
func sourceAllowlist(report model.Report) []string {
	var urls []string
	if report.Bulletin.URL != "" {
		urls = append(urls, report.Bulletin.URL)
	}
	if report.Archive.URL != "" {
		urls = append(urls, report.Archive.URL)
	}
	return urls
}

// RenderBriefMarkdown renders the brief as a standalone document. It is kept
// separate from the main report so generated text never sits next to
// extracted records.
func RenderBriefMarkdown(brief *model.CaseBrief) string {
	if brief == nil || !brief.Enabled {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("# LLM Case Brief\n\n")
	sb.WriteString("> **GENERATED CONTENT.** This brief was written by a language model.\n")
	sb.WriteString("> All records, scores, and match candidates were determined independently of the LLM.\n\n")

	sb.WriteString(fmt.Sprintf("**Provider:** %s\n\n", brief.Provider))
	sb.WriteString(fmt.Sprintf("**Model:** %s\n\n", brief.Model))
	sb.WriteString(fmt.Sprintf("**Strict Sources Mode:** %t\n\n", brief.StrictSources))
	sb.WriteString("---\n\n")

	if brief.BriefMD == "" {
		sb.WriteString("No brief generated.\n")
	} else {
		sb.WriteString(brief.BriefMD)
		sb.WriteString("\n")
	}

	if len(brief.Warnings) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, warning := range brief.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", warning))
		}
	}

	return sb.String()
}
