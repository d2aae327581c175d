package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newsproof/newsproof/internal/worker"
)

// RAGClient queries an external retrieval-augmented search service
// over HTTP. The service owns the corpus and the scoring; this client
// only normalizes transport.
type RAGClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *worker.Limiter
	userAgent  string
}

// NewRAGClient creates a client for the RAG service at baseURL
func NewRAGClient(baseURL, userAgent string, timeout time.Duration, limiter *worker.Limiter) *RAGClient {
	return &RAGClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		userAgent:  userAgent,
	}
}

type ragRequest struct {
	Query  string `json:"query"`
	KBName string `json:"kb_name"`
	Mode   string `json:"mode"`
	TopK   int    `json:"top_k"`
}

type ragResponse struct {
	Results []RAGResult `json:"results"`
}

// Search runs a hybrid search against the named knowledge base
func (c *RAGClient) Search(ctx context.Context, query, kbName, mode string, topK int) ([]RAGResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, err := json.Marshal(ragRequest{
		Query:  query,
		KBName: kbName,
		Mode:   mode,
		TopK:   topK,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rag search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rag search: status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed ragResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return parsed.Results, nil
}
