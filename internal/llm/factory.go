package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a provider from configuration. The model
// identifier is validated here because extraction and verification
// have no fallback for a missing model, only for failed calls.
func NewProvider(config Config) (Provider, error) {
	if config.Model == "" {
		return nil, ErrModelNotConfigured
	}

	switch strings.ToLower(config.Provider) {
	case "openai", "":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
