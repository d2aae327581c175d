package model

import (
	"fmt"
	"time"
)

// Config is the complete newsproof configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	FactCheck   FactCheckConfig   `yaml:"fact_check" mapstructure:"fact_check"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the text-generation provider
type LLMConfig struct {
	// Provider name: "openai" or "ollama"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model is the required model identifier. A missing model is a
	// fatal configuration error, not a degradation.
	Model string `yaml:"model" mapstructure:"model"`

	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// FactCheckConfig configures the verification pipeline
type FactCheckConfig struct {
	MaxClaims   int               `yaml:"max_claims" mapstructure:"max_claims"`
	Presets     map[string]Preset `yaml:"presets" mapstructure:"presets"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Bias        BiasConfig        `yaml:"bias_detection" mapstructure:"bias_detection"`

	// Provider endpoints (implemented by external collaborators)
	RAGBaseURL       string `yaml:"rag_base_url,omitempty" mapstructure:"rag_base_url"`
	WebSearchBaseURL string `yaml:"web_search_base_url,omitempty" mapstructure:"web_search_base_url"`
	WebSearchAPIKey  string `yaml:"web_search_api_key,omitempty" mapstructure:"web_search_api_key"`
	PaperBaseURL     string `yaml:"paper_base_url,omitempty" mapstructure:"paper_base_url"`
}

// Preset is a named bundle of evidence-gathering limits and toggles
type Preset struct {
	MaxSources        int  `yaml:"max_sources" mapstructure:"max_sources"`
	EnableRAGSearch   bool `yaml:"enable_rag_search" mapstructure:"enable_rag_search"`
	EnableWebSearch   bool `yaml:"enable_web_search" mapstructure:"enable_web_search"`
	EnablePaperSearch bool `yaml:"enable_paper_search" mapstructure:"enable_paper_search"`

	// ValidateCitations turns on HEAD-checking of web evidence URLs.
	// Diagnostics only; never affects verdicts or ranking.
	ValidateCitations bool `yaml:"validate_citations" mapstructure:"validate_citations"`
}

// CredibilityConfig holds the score fusion weights. The weights must
// sum to 1.0; DefaultConfig keeps the 0.4/0.6 split.
type CredibilityConfig struct {
	SourceWeight   float64 `yaml:"source_weight" mapstructure:"source_weight"`
	EvidenceWeight float64 `yaml:"evidence_weight" mapstructure:"evidence_weight"`
}

// BiasConfig toggles the bias detector and its sub-checks
type BiasConfig struct {
	Enabled             bool `yaml:"enabled" mapstructure:"enabled"`
	CheckPoliticalLean  bool `yaml:"check_political_lean" mapstructure:"check_political_lean"`
	CheckEmotionalTone  bool `yaml:"check_emotional_tone" mapstructure:"check_emotional_tone"`
	CheckLoadedLanguage bool `yaml:"check_loaded_language" mapstructure:"check_loaded_language"`
}

// HTTPConfig configures outbound provider and validation requests
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig configures the evidence cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds the concurrent work the pipeline does
type ConcurrencyConfig struct {
	// Workers is the batch-level worker count. The default of 1 keeps
	// batch processing sequential; callers may opt in to more.
	Workers int `yaml:"workers" mapstructure:"workers"`

	// ValidationWorkers bounds concurrent citation HEAD requests
	ValidationWorkers int `yaml:"validation_workers" mapstructure:"validation_workers"`

	// ProviderRatePerSecond rate-limits evidence provider calls per host
	ProviderRatePerSecond float64 `yaml:"provider_rate_per_second" mapstructure:"provider_rate_per_second"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Timeout:     30,
			Temperature: 0.2,
			MaxTokens:   1500,
		},
		FactCheck: FactCheckConfig{
			MaxClaims: 5,
			Presets:   DefaultPresets(),
			Credibility: CredibilityConfig{
				SourceWeight:   0.4,
				EvidenceWeight: 0.6,
			},
			Bias: BiasConfig{
				Enabled:             true,
				CheckPoliticalLean:  true,
				CheckEmotionalTone:  true,
				CheckLoadedLanguage: true,
			},
		},
		HTTP: HTTPConfig{
			Timeout:   20 * time.Second,
			UserAgent: "newsproof/0.1 (+https://github.com/newsproof/newsproof)",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:               1,
			ValidationWorkers:     10,
			ProviderRatePerSecond: 2,
		},
		Output: OutputConfig{},
	}
}

// DefaultPresets returns the built-in quick/thorough/deep presets
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"quick": {
			MaxSources:      5,
			EnableRAGSearch: true,
			EnableWebSearch: true,
		},
		"thorough": {
			MaxSources:        10,
			EnableRAGSearch:   true,
			EnableWebSearch:   true,
			EnablePaperSearch: true,
		},
		"deep": {
			MaxSources:        20,
			EnableRAGSearch:   true,
			EnableWebSearch:   true,
			EnablePaperSearch: true,
			ValidateCitations: true,
		},
	}
}

// ResolvePreset looks up a named preset, falling back to "quick" for
// an empty name.
func (c *Config) ResolvePreset(name string) (Preset, error) {
	if name == "" {
		name = "quick"
	}
	preset, ok := c.FactCheck.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	if preset.MaxSources <= 0 {
		preset.MaxSources = 5
	}
	return preset, nil
}
