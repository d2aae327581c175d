package evidence

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/newsproof/newsproof/internal/cache"
	"github.com/newsproof/newsproof/internal/model"
)

type fakeRAG struct {
	results []RAGResult
	err     error
	calls   int
	lastKB  string
}

func (f *fakeRAG) Search(_ context.Context, _, kbName, _ string, _ int) ([]RAGResult, error) {
	f.calls++
	f.lastKB = kbName
	return f.results, f.err
}

type fakeWeb struct {
	result *WebResult
	err    error
	calls  int
}

func (f *fakeWeb) Search(_ context.Context, _ string) (*WebResult, error) {
	f.calls++
	return f.result, f.err
}

type fakePaper struct {
	papers []Paper
	err    error
	calls  int
}

func (f *fakePaper) Search(_ context.Context, _ string, _ int) ([]Paper, error) {
	f.calls++
	return f.papers, f.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func allProvidersPreset(maxSources int) model.Preset {
	return model.Preset{
		MaxSources:        maxSources,
		EnableRAGSearch:   true,
		EnableWebSearch:   true,
		EnablePaperSearch: true,
	}
}

func TestGatherRanksAndTruncates(t *testing.T) {
	rag := &fakeRAG{results: []RAGResult{
		{Content: "kb low", Score: 0.3},
		{Content: "kb high", Score: 0.95},
	}}
	web := &fakeWeb{result: &WebResult{
		Content:   strings.Repeat("answer text ", 50),
		Citations: []string{"https://a.example", "https://b.example"},
	}}

	agg := NewAggregator(rag, web, nil, nil, 0, quietLogger())
	claim := model.Claim{Text: "GDP grew 3% in 2024", Type: model.ClaimTypeStatistical}

	result := agg.Gather(context.Background(), claim, "thorough", allProvidersPreset(3), "econ")

	if result.TotalSources != 3 {
		t.Fatalf("TotalSources = %d, want 3", result.TotalSources)
	}
	if len(result.Evidence) != 3 {
		t.Fatalf("len(Evidence) = %d, want 3", len(result.Evidence))
	}
	// 0.95 kb hit, then first citation at 0.8, then second at 0.7;
	// the 0.3 kb hit falls off.
	if result.Evidence[0].Content != "kb high" {
		t.Errorf("top evidence = %q, want kb hit", result.Evidence[0].Content)
	}
	if result.Evidence[1].URL != "https://a.example" {
		t.Errorf("second evidence URL = %q, want first citation", result.Evidence[1].URL)
	}
	if result.Evidence[2].Relevance != 0.7 {
		t.Errorf("third evidence relevance = %v, want 0.7", result.Evidence[2].Relevance)
	}
}

func TestGatherWebItemShape(t *testing.T) {
	content := strings.Repeat("x", 450)
	web := &fakeWeb{result: &WebResult{
		Content: content,
		Citations: []string{
			"https://one.example", "https://two.example",
			"https://three.example", "https://four.example",
		},
	}}

	agg := NewAggregator(nil, web, nil, nil, 0, quietLogger())
	preset := model.Preset{MaxSources: 5, EnableWebSearch: true}
	result := agg.Gather(context.Background(), model.Claim{Text: "c"}, "quick", preset, "")

	if len(result.Evidence) != 4 {
		t.Fatalf("len(Evidence) = %d, want 4", len(result.Evidence))
	}
	first := result.Evidence[0]
	if first.Provider != model.ProviderWeb {
		t.Errorf("Provider = %q, want web", first.Provider)
	}
	if first.SourceName != "https://one.example" || first.URL != "https://one.example" {
		t.Errorf("citation not carried into SourceName/URL: %+v", first)
	}
	if first.Content != content[:200] {
		t.Errorf("first snippet wrong window")
	}
	if result.Evidence[1].Content != content[200:400] {
		t.Errorf("second snippet wrong window")
	}
	// Third window is clipped to the end of the content.
	if result.Evidence[2].Content != content[400:] {
		t.Errorf("third snippet wrong window")
	}
	// Fourth window starts past the content; falls back to the tail.
	if result.Evidence[3].Content != content[250:] {
		t.Errorf("fourth snippet should be the 200-char tail")
	}
	if got := result.Evidence[3].Metadata["position"]; got != 4 {
		t.Errorf("position metadata = %v, want 4", got)
	}
}

func TestGatherSkipsRAGWithoutKB(t *testing.T) {
	rag := &fakeRAG{results: []RAGResult{{Content: "hit", Score: 0.9}}}
	agg := NewAggregator(rag, nil, nil, nil, 0, quietLogger())

	result := agg.Gather(context.Background(), model.Claim{Text: "c"}, "quick", allProvidersPreset(5), "")

	if rag.calls != 0 {
		t.Errorf("rag called %d times without a knowledge base", rag.calls)
	}
	if len(result.Evidence) != 0 {
		t.Errorf("expected no evidence, got %d", len(result.Evidence))
	}
}

func TestGatherGatesPapersByClaimType(t *testing.T) {
	paper := &fakePaper{papers: []Paper{{Title: "Study", Abstract: "abs", Relevance: 0.7}}}
	agg := NewAggregator(nil, nil, paper, nil, 0, quietLogger())
	preset := model.Preset{MaxSources: 5, EnablePaperSearch: true}

	agg.Gather(context.Background(), model.Claim{Text: "c", Type: model.ClaimTypeQuote}, "deep", preset, "")
	if paper.calls != 0 {
		t.Fatalf("paper search ran for a quote claim")
	}

	result := agg.Gather(context.Background(), model.Claim{Text: "c", Type: model.ClaimTypeScientific}, "deep", preset, "")
	if paper.calls != 1 {
		t.Fatalf("paper search did not run for a scientific claim")
	}
	if result.Evidence[0].SourceName != "ArXiv: Study" {
		t.Errorf("SourceName = %q", result.Evidence[0].SourceName)
	}
}

func TestGatherIsolatesProviderFailure(t *testing.T) {
	rag := &fakeRAG{err: errors.New("kb offline")}
	web := &fakeWeb{result: &WebResult{Content: "fine", Citations: []string{"https://ok.example"}}}

	agg := NewAggregator(rag, web, nil, nil, 0, quietLogger())
	result := agg.Gather(context.Background(), model.Claim{Text: "c"}, "quick", allProvidersPreset(5), "kb")

	if len(result.Evidence) != 1 {
		t.Fatalf("len(Evidence) = %d, want 1 from the healthy provider", len(result.Evidence))
	}
	if result.Evidence[0].Provider != model.ProviderWeb {
		t.Errorf("surviving evidence from %q, want web", result.Evidence[0].Provider)
	}
}

func TestGatherUsesCache(t *testing.T) {
	web := &fakeWeb{result: &WebResult{Content: "fine", Citations: []string{"https://ok.example"}}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)

	agg := NewAggregator(nil, web, nil, c, time.Minute, quietLogger())
	preset := model.Preset{MaxSources: 5, EnableWebSearch: true}
	claim := model.Claim{Text: "cached claim"}

	first := agg.Gather(context.Background(), claim, "quick", preset, "")
	second := agg.Gather(context.Background(), claim, "quick", preset, "")

	if web.calls != 1 {
		t.Fatalf("web called %d times, want 1 (second hit served from cache)", web.calls)
	}
	if len(second.Evidence) != len(first.Evidence) {
		t.Errorf("cached result differs: %d vs %d items", len(second.Evidence), len(first.Evidence))
	}
}

func TestGatherEmptyClaim(t *testing.T) {
	web := &fakeWeb{result: &WebResult{Content: "x", Citations: []string{"https://x.example"}}}
	agg := NewAggregator(nil, web, nil, nil, 0, quietLogger())

	result := agg.Gather(context.Background(), model.Claim{}, "quick", allProvidersPreset(5), "")

	if web.calls != 0 {
		t.Errorf("providers ran for an empty claim")
	}
	if len(result.Evidence) != 0 {
		t.Errorf("expected empty evidence, got %d", len(result.Evidence))
	}
}
