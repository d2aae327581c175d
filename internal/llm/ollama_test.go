package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if req.Format != "json" {
			t.Errorf("Expected format=json, got %q", req.Format)
		}

		resp := ollamaResponse{
			Model:    req.Model,
			Response: `{"verdict": "true"}`,
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := provider.Complete(context.Background(), CompletionRequest{
		Prompt:       "verify this",
		SystemPrompt: "you are a fact checker",
		JSONResponse: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != `{"verdict": "true"}` {
		t.Errorf("Unexpected completion: %q", out)
	}
}

func TestOllamaProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "missing"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for API failure")
	}
}

func TestOllamaProvider_DefaultBaseURL(t *testing.T) {
	provider, err := NewOllamaProvider(Config{Model: "llama3.1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.baseURL != "http://localhost:11434" {
		t.Errorf("Expected default base URL, got %q", provider.baseURL)
	}
}
