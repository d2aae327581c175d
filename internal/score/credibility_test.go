package score

import (
	"io"
	"log"
	"testing"

	"github.com/newsproof/newsproof/internal/model"
)

func newTestScorer() *CredibilityScorer {
	cfg := model.CredibilityConfig{SourceWeight: 0.4, EvidenceWeight: 0.6}
	return NewCredibilityScorer(cfg, log.New(io.Discard, "", 0))
}

func TestScoreSource(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		source string
		want   float64
	}{
		{"Reuters", 0.96},
		{"BBC News", 0.95},
		{"Knowledge Base: reuters-2024", 0.96},
		{"ArXiv: Deep Learning Survey", 0.90},
		{"Nature Communications", 0.97},
		{"some random blog", 0.70},
		{"", 0.70},
	}

	for _, tt := range tests {
		if got := s.ScoreSource(tt.source); got != tt.want {
			t.Errorf("ScoreSource(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestScoreClaimWeightedCombination(t *testing.T) {
	s := newTestScorer()

	// Source component: bbc 0.95, the verge 0.82, unknown 0.70 -> avg 0.8233
	evidence := []model.EvidenceItem{
		{SourceName: "BBC"},
		{SourceName: "The Verge"},
		{SourceName: "unknown outlet"},
	}
	verification := &model.VerificationResult{Confidence: 0.8}

	// 0.823 * 0.4 + 0.8 * 0.6 = 0.809 -> 0.81
	if got := s.ScoreClaim(verification, evidence); got != 0.81 {
		t.Errorf("ScoreClaim = %v, want 0.81", got)
	}
}

func TestScoreClaimNoEvidence(t *testing.T) {
	s := newTestScorer()
	verification := &model.VerificationResult{Confidence: 0.8}

	// Source component falls back to 0.5: 0.5*0.4 + 0.8*0.6 = 0.68
	if got := s.ScoreClaim(verification, nil); got != 0.68 {
		t.Errorf("ScoreClaim = %v, want 0.68", got)
	}
}

func TestScoreClaimNilVerification(t *testing.T) {
	s := newTestScorer()

	// Both components default to 0.5: 0.5*0.4 + 0.5*0.6 = 0.5
	if got := s.ScoreClaim(nil, nil); got != 0.5 {
		t.Errorf("ScoreClaim = %v, want 0.5", got)
	}
}

func TestAddCustomSource(t *testing.T) {
	s := newTestScorer()

	s.AddCustomSource("MyLocalPaper", 0.65)
	if got := s.ScoreSource("mylocalpaper daily"); got != 0.65 {
		t.Errorf("custom source rating = %v, want 0.65", got)
	}

	// Overriding a built-in entry replaces its rating
	s.AddCustomSource("bbc", 0.50)
	if got := s.ScoreSource("BBC World"); got != 0.50 {
		t.Errorf("overridden rating = %v, want 0.50", got)
	}

	// Out-of-range ratings clamp
	s.AddCustomSource("shady", 1.7)
	if got := s.ScoreSource("shady site"); got != 1.0 {
		t.Errorf("clamped rating = %v, want 1.0", got)
	}
}
