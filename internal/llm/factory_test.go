package llm

import (
	"errors"
	"testing"
)

func TestNewProvider_RequiresModel(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if !errors.Is(err, ErrModelNotConfigured) {
		t.Fatalf("Expected ErrModelNotConfigured, got %v", err)
	}
}

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := NewProvider(Config{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected provider name 'openai', got %q", p.Name())
	}
}

func TestNewProvider_OpenAI_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai", Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}

func TestNewProvider_Ollama(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama", Model: "llama3.1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Expected provider name 'ollama', got %q", p.Name())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "mystery", Model: "m"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}
