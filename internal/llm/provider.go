package llm

import (
	"context"
	"errors"

	"github.com/newsproof/newsproof/internal/model"
)

// ErrModelNotConfigured is returned when no model identifier is
// configured. This is the one fatal configuration error in the
// pipeline; everything else degrades.
var ErrModelNotConfigured = errors.New("llm: model identifier not configured")

// ErrMalformedResponse marks a completion that came back but could not
// be parsed into the expected JSON schema. Callers catch this declared
// category to route to their rule-based fallbacks.
var ErrMalformedResponse = errors.New("llm: malformed response")

// Provider defines the interface for text-generation providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw completion text
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Prompt is the user-role prompt
	Prompt string

	// SystemPrompt sets the assistant's instruction frame
	SystemPrompt string

	// Model overrides the configured model (optional)
	Model string

	// Temperature overrides the configured temperature when >= 0
	Temperature float64

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// JSONResponse requests a JSON-object response format. The
	// pipeline always sets this; parsing failures map to
	// ErrMalformedResponse at the call site.
	JSONResponse bool
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai" or "ollama"
	Provider string

	// Model name (provider-specific, required)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, proxies)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// Temperature for generation
	Temperature float64

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		Temperature: mc.Temperature,
		MaxTokens:   mc.MaxTokens,
	}
}
