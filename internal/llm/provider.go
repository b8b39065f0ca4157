package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// WriteBrief generates a case brief for the report with strict source mode
	WriteBrief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// BriefRequest contains the input for brief generation
type BriefRequest struct {
	// Report is the cross-check report to brief
	Report model.Report

	// SourceURLs is the STRICT allowlist of URLs the LLM can cite
	// This prevents hallucination - the LLM cannot reference any URL not in this list
	SourceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// BriefResponse contains the LLM's brief output
type BriefResponse struct {
	// Brief is the generated brief text
	Brief string

	// CitedURLs are the URLs the LLM actually cited (for verification)
	CitedURLs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictSources enforces the URL allowlist (should always be true)
	StrictSources bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictSources: true, // CRITICAL: Always enforce
		MaxTokens:     1000,
	}
}

// BuildPrompt constructs the default prompt for the case brief with strict source mode
func BuildPrompt(report model.Report, sourceURLs []string) string {
	prompt := fmt.Sprintf(`You are writing a brief for a cold-case cross-reference report. The report correlates victim records extracted from two public sources - it NEVER identifies suspects or asserts that two records describe the same person.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Every match candidate is a lead for human review, never an identification.
4. Focus on CORRELATION QUALITY, not certainty. Use phrases like:
   - "The records agree on name and year..."
   - "The overlap rests on location alone..."
5. Never name a suspect and never state that a case is solved.

Report Summary:
- Target Year: %d
- Bulletin Source: %s (%d records)
- Archive Source: %s (%d records)
- Match Candidates: %d (%d high, %d moderate, %d low confidence)

Top Matches:
`, joinURLs(sourceURLs), report.TargetYear,
		report.Bulletin.URL, len(report.Bulletin.Records),
		report.Archive.URL, len(report.Archive.Records),
		len(report.Matches),
		countByConfidence(report.Matches, "high"),
		countByConfidence(report.Matches, "moderate"),
		countByConfidence(report.Matches, "low"))

	// Add top 3 matches
	for i, match := range report.Matches {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s / %s (score %.2f): %s\n",
			match.RecordA.VictimName, match.RecordB.VictimName, match.Score,
			strings.Join(match.Reasons, "; "))
	}

	prompt += "\nProvide a 3-4 sentence brief focusing on correlation quality, not identification."

	return prompt
}

// Helper functions

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}
	result := ""
	for i, url := range urls {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", url)
	}
	return result
}

func countByConfidence(matches []model.MatchCandidate, tier string) int {
	count := 0
	for _, m := range matches {
		if m.Confidence == tier {
			count++
		}
	}
	return count
}
