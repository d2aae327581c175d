package evidence

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/newsproof/newsproof/internal/cache"
	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/util"
)

// Aggregator fans one claim out to the configured evidence providers,
// normalizes their results, and returns a ranked, truncated evidence
// set. Provider failures are isolated: a failing provider contributes
// an empty list and the gather continues.
type Aggregator struct {
	rag      RAGSearcher
	web      WebSearcher
	paper    PaperSearcher
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *log.Logger
}

// NewAggregator creates an aggregator. Any searcher may be nil, in
// which case that provider is treated as unavailable. A nil cache
// disables caching.
func NewAggregator(rag RAGSearcher, web WebSearcher, paper PaperSearcher, c cache.Cache, cacheTTL time.Duration, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		rag:      rag,
		web:      web,
		paper:    paper,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Gather collects evidence for one claim under the given preset.
// Providers run concurrently; the call waits for all of them to
// settle. Results are sorted descending by relevance (stable for
// ties) and truncated to preset.MaxSources.
func (a *Aggregator) Gather(ctx context.Context, claim model.Claim, presetName string, preset model.Preset, kbName string) *model.EvidenceResult {
	if claim.Text == "" {
		return &model.EvidenceResult{Preset: presetName, Evidence: []model.EvidenceItem{}}
	}

	cacheKey := cache.EvidenceKey(claim.Text, presetName, kbName)
	if a.cache != nil {
		if cached, found := cache.GetEvidence(a.cache, cacheKey); found {
			return cached
		}
	}

	var (
		ragItems, webItems, paperItems []model.EvidenceItem
		wg                             sync.WaitGroup
	)

	// RAG requires a knowledge base; skipped silently without one
	if preset.EnableRAGSearch && a.rag != nil && kbName != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ragItems = a.searchRAG(ctx, claim.Text, kbName, preset.MaxSources)
		}()
	}

	if preset.EnableWebSearch && a.web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			webItems = a.searchWeb(ctx, claim.Text, preset.MaxSources)
		}()
	}

	// Papers only make sense for scientific and statistical claims
	if preset.EnablePaperSearch && a.paper != nil &&
		(claim.Type == model.ClaimTypeScientific || claim.Type == model.ClaimTypeStatistical) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			paperItems = a.searchPapers(ctx, claim.Text, preset.MaxSources)
		}()
	}

	wg.Wait()

	// Provider arrival order (rag, web, paper) breaks relevance ties
	combined := make([]model.EvidenceItem, 0, len(ragItems)+len(webItems)+len(paperItems))
	combined = append(combined, ragItems...)
	combined = append(combined, webItems...)
	combined = append(combined, paperItems...)

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Relevance > combined[j].Relevance
	})
	if len(combined) > preset.MaxSources {
		combined = combined[:preset.MaxSources]
	}

	result := &model.EvidenceResult{
		Claim:        claim.Text,
		Evidence:     combined,
		TotalSources: len(combined),
		Preset:       presetName,
	}

	if a.cache != nil {
		if err := cache.SetEvidence(a.cache, cacheKey, result, a.cacheTTL); err != nil {
			a.logger.Printf("evidence: cache store failed: %v", err)
		}
	}

	return result
}

func (a *Aggregator) searchRAG(ctx context.Context, claimText, kbName string, maxResults int) []model.EvidenceItem {
	results, err := a.rag.Search(ctx, claimText, kbName, "hybrid", maxResults)
	if err != nil {
		a.logger.Printf("evidence: rag search failed for claim %q: %v", util.Truncate(claimText, 50), err)
		return nil
	}

	items := make([]model.EvidenceItem, 0, len(results))
	for _, r := range results {
		items = append(items, model.EvidenceItem{
			Provider:   model.ProviderRAG,
			SourceName: fmt.Sprintf("Knowledge Base: %s", kbName),
			Content:    r.Content,
			Relevance:  clamp01(r.Score),
			Metadata:   r.Metadata,
		})
	}
	return items
}

func (a *Aggregator) searchWeb(ctx context.Context, claimText string, maxResults int) []model.EvidenceItem {
	result, err := a.web.Search(ctx, claimText)
	if err != nil {
		a.logger.Printf("evidence: web search failed for claim %q: %v", util.Truncate(claimText, 50), err)
		return nil
	}

	citations := result.Citations
	if len(citations) > maxResults {
		citations = citations[:maxResults]
	}

	items := make([]model.EvidenceItem, 0, len(citations))
	for i, citation := range citations {
		items = append(items, model.EvidenceItem{
			Provider:   model.ProviderWeb,
			SourceName: citation,
			Content:    webSnippet(result.Content, i),
			URL:        citation,
			// First citation ranks highest; position decays relevance
			Relevance: clamp01(0.8 - 0.1*float64(i)),
			Metadata:  map[string]any{"position": i + 1},
		})
	}
	return items
}

func (a *Aggregator) searchPapers(ctx context.Context, claimText string, maxResults int) []model.EvidenceItem {
	papers, err := a.paper.Search(ctx, claimText, maxResults)
	if err != nil {
		a.logger.Printf("evidence: paper search failed for claim %q: %v", util.Truncate(claimText, 50), err)
		return nil
	}

	items := make([]model.EvidenceItem, 0, len(papers))
	for _, p := range papers {
		title := p.Title
		if title == "" {
			title = "Unknown"
		}
		items = append(items, model.EvidenceItem{
			Provider:   model.ProviderPaper,
			SourceName: fmt.Sprintf("ArXiv: %s", title),
			Content:    p.Abstract,
			URL:        p.URL,
			Relevance:  clamp01(p.Relevance),
			Metadata: map[string]any{
				"authors":    p.Authors,
				"published":  p.Published,
				"categories": p.Categories,
			},
		})
	}
	return items
}

// webSnippet slices a ~200-char window of the synthesized answer for
// the citation at the given position, falling back to the tail when
// the answer is shorter than the window start.
func webSnippet(content string, position int) string {
	start := position * 200
	if len(content) > start {
		end := start + 200
		if end > len(content) {
			end = len(content)
		}
		return content[start:end]
	}
	if len(content) > 200 {
		return content[len(content)-200:]
	}
	return content
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
