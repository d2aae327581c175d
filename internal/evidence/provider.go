package evidence

import "context"

// RAGSearcher is the knowledge-base search collaborator
type RAGSearcher interface {
	Search(ctx context.Context, query, kbName, mode string, topK int) ([]RAGResult, error)
}

// RAGResult is one knowledge-base hit
type RAGResult struct {
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// WebSearcher is the web search collaborator
type WebSearcher interface {
	Search(ctx context.Context, query string) (*WebResult, error)
}

// WebResult is a web search answer with its citation list
type WebResult struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// PaperSearcher is the academic paper search collaborator
type PaperSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Paper, error)
}

// Paper is one academic search hit
type Paper struct {
	Title      string   `json:"title"`
	Abstract   string   `json:"abstract"`
	URL        string   `json:"url"`
	Authors    []string `json:"authors,omitempty"`
	Published  string   `json:"published,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Relevance  float64  `json:"relevance"`
}
