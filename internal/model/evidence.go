package model

// EvidenceItem is one normalized result from an evidence provider,
// relevant to a single claim. Items are never mutated after the
// aggregator ranks and truncates them.
type EvidenceItem struct {
	Provider   ProviderKind   `json:"source"`             // Which provider produced this item
	SourceName string         `json:"source_name"`        // Human-readable source label
	Content    string         `json:"content"`            // Excerpt or abstract
	URL        string         `json:"url,omitempty"`      // Where the evidence lives, if known
	Relevance  float64        `json:"relevance"`          // [0,1], provider-reported or synthesized
	Metadata   map[string]any `json:"metadata,omitempty"` // Provider-specific extras
}

// ProviderKind identifies an evidence provider
type ProviderKind string

const (
	ProviderRAG   ProviderKind = "rag"   // Knowledge-base retrieval
	ProviderWeb   ProviderKind = "web"   // Web search with citations
	ProviderPaper ProviderKind = "paper" // Academic paper search
)

// EvidenceResult is the aggregator's output for one claim
type EvidenceResult struct {
	Claim        string         `json:"claim"`
	Evidence     []EvidenceItem `json:"evidence"`
	TotalSources int            `json:"total_sources"`
	Preset       string         `json:"preset"`
}

// ValidationResult records the outcome of probing one evidence URL.
// Validation is additive diagnostics only; it never changes verdicts
// or evidence ranking.
type ValidationResult struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
	AgeDays      *int   `json:"age_days,omitempty"`
	IsStale      bool   `json:"is_stale"` // Last-Modified > 1 year ago
	IsDead       bool   `json:"is_dead"`  // 404, 410, or unreachable
	Error        string `json:"error,omitempty"`
}
