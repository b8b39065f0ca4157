package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:      modelConfig.Provider,
		Model:         modelConfig.Model,
		APIKey:        modelConfig.APIKey,
		BaseURL:       modelConfig.BaseURL,
		Timeout:       modelConfig.Timeout,
		StrictSources: modelConfig.StrictSources,
		MaxTokens:     modelConfig.MaxTokens,
		HTTPProxy:     modelConfig.HTTPProxy,
		HTTPSProxy:    modelConfig.HTTPSProxy,
		NoProxy:       modelConfig.NoProxy,
	}
}

// APIKeyFromEnv resolves the API key for a provider from the environment.
// Keys are never written to config files: COLDTRAIL_LLM_API_KEY wins, then
// the provider's conventional variable.
func APIKeyFromEnv(provider string) string {
	if key := os.Getenv("COLDTRAIL_LLM_API_KEY"); key != "" {
		return key
	}
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}
