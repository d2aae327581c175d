package bias

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/newsproof/newsproof/internal/model"
)

func newTestDetector() *Detector {
	cfg := model.BiasConfig{
		Enabled:             true,
		CheckPoliticalLean:  true,
		CheckEmotionalTone:  true,
		CheckLoadedLanguage: true,
	}
	return NewDetector(cfg, log.New(io.Discard, "", 0))
}

func TestDetectDisabled(t *testing.T) {
	d := NewDetector(model.BiasConfig{Enabled: false}, log.New(io.Discard, "", 0))

	analysis := d.Detect(model.Article{Title: "progressive triumph", Content: "socialist hero"})

	if analysis.Enabled {
		t.Fatalf("Enabled = true, want false")
	}
	if analysis.OverallBiasScore != 0 || analysis.PoliticalLean != "" {
		t.Errorf("disabled analysis carries data: %+v", analysis)
	}
}

func TestDetectNeutralArticle(t *testing.T) {
	d := newTestDetector()

	analysis := d.Detect(model.Article{
		Title:   "City council approves budget",
		Content: "The council voted 7 to 2 on Tuesday.",
	})

	if analysis.PoliticalLean != model.LeanNeutral {
		t.Errorf("PoliticalLean = %q, want neutral", analysis.PoliticalLean)
	}
	if analysis.PoliticalConfidence != 0.0 {
		t.Errorf("PoliticalConfidence = %v, want 0.0", analysis.PoliticalConfidence)
	}
	if analysis.EmotionalTone != model.ToneBalanced {
		t.Errorf("EmotionalTone = %q, want balanced", analysis.EmotionalTone)
	}
	if len(analysis.LoadedLanguage) != 0 {
		t.Errorf("LoadedLanguage = %v, want empty", analysis.LoadedLanguage)
	}
	if analysis.OverallBiasScore != 0.0 {
		t.Errorf("OverallBiasScore = %v, want 0.0", analysis.OverallBiasScore)
	}
}

func TestDetectPoliticalLean(t *testing.T) {
	d := newTestDetector()

	// 3 left hits, 1 right hit: 3 > 1.5 so lean left, confidence 3/4
	analysis := d.Detect(model.Article{
		Title:   "Progressive coalition pushes climate action",
		Content: "Liberal lawmakers clashed with conservative members over the bill.",
	})

	if analysis.PoliticalLean != model.LeanLeft {
		t.Errorf("PoliticalLean = %q, want left", analysis.PoliticalLean)
	}
	if analysis.PoliticalConfidence != 0.75 {
		t.Errorf("PoliticalConfidence = %v, want 0.75", analysis.PoliticalConfidence)
	}
}

func TestDetectLeanRequiresMajority(t *testing.T) {
	d := newTestDetector()

	// 3 left vs 2 right: 3 is not > 2*1.5, stays neutral at 0.5
	analysis := d.Detect(model.Article{
		Content: "progressive liberal socialist free market conservative",
	})

	if analysis.PoliticalLean != model.LeanNeutral {
		t.Errorf("PoliticalLean = %q, want neutral", analysis.PoliticalLean)
	}
	if analysis.PoliticalConfidence != 0.5 {
		t.Errorf("PoliticalConfidence = %v, want 0.5", analysis.PoliticalConfidence)
	}
}

func TestDetectLeanWordBoundaries(t *testing.T) {
	d := newTestDetector()

	// "liberally" and "traditionally" must not count as indicators
	analysis := d.Detect(model.Article{
		Content: "The spice was applied liberally, as traditionally done.",
	})

	if analysis.PoliticalLean != model.LeanNeutral || analysis.PoliticalConfidence != 0.0 {
		t.Errorf("substring hits counted as indicators: %+v", analysis)
	}
}

func TestDetectEmotionalTone(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name    string
		content string
		want    model.EmotionalTone
	}{
		{"positive", "A triumph and a victory, an outstanding success.", model.TonePositive},
		{"negative", "A disaster followed by a scandal and a crisis.", model.ToneNegative},
		{"mixed", "A victory for some, a disaster for others.", model.ToneBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := d.Detect(model.Article{Content: tt.content})
			if analysis.EmotionalTone != tt.want {
				t.Errorf("EmotionalTone = %q, want %q", analysis.EmotionalTone, tt.want)
			}
		})
	}
}

func TestDetectLoadedLanguage(t *testing.T) {
	d := newTestDetector()

	analysis := d.Detect(model.Article{
		Content: "The hero turned disaster into triumph. Another disaster loomed.",
	})

	// Distinct words only, positive lexicon first
	want := []string{"hero", "triumph", "disaster"}
	if len(analysis.LoadedLanguage) != len(want) {
		t.Fatalf("LoadedLanguage = %v, want %v", analysis.LoadedLanguage, want)
	}
	for i, w := range want {
		if analysis.LoadedLanguage[i] != w {
			t.Errorf("LoadedLanguage[%d] = %q, want %q", i, analysis.LoadedLanguage[i], w)
		}
	}
}

func TestDetectBiasScore(t *testing.T) {
	d := newTestDetector()

	// Lean left (conf capped at 0.9), positive tone, two loaded words:
	// 0.9*0.4 + 0.3 + 2*0.05 = 0.76
	content := strings.Repeat("progressive climate action ", 5) +
		"It was a triumph, a true victory."
	analysis := d.Detect(model.Article{Content: content})

	if analysis.PoliticalLean != model.LeanLeft {
		t.Fatalf("PoliticalLean = %q, want left", analysis.PoliticalLean)
	}
	if analysis.PoliticalConfidence != 0.9 {
		t.Fatalf("PoliticalConfidence = %v, want 0.9", analysis.PoliticalConfidence)
	}
	if analysis.EmotionalTone != model.TonePositive {
		t.Fatalf("EmotionalTone = %q, want positive", analysis.EmotionalTone)
	}
	if analysis.OverallBiasScore != 0.76 {
		t.Errorf("OverallBiasScore = %v, want 0.76", analysis.OverallBiasScore)
	}
}

func TestDetectChecksToggleIndividually(t *testing.T) {
	cfg := model.BiasConfig{
		Enabled:             true,
		CheckPoliticalLean:  false,
		CheckEmotionalTone:  false,
		CheckLoadedLanguage: true,
	}
	d := NewDetector(cfg, log.New(io.Discard, "", 0))

	analysis := d.Detect(model.Article{
		Content: "A progressive triumph and a socialist victory.",
	})

	if analysis.PoliticalLean != model.LeanNeutral {
		t.Errorf("disabled lean check ran: %q", analysis.PoliticalLean)
	}
	if analysis.EmotionalTone != model.ToneBalanced {
		t.Errorf("disabled tone check ran: %q", analysis.EmotionalTone)
	}
	if len(analysis.LoadedLanguage) != 2 {
		t.Errorf("LoadedLanguage = %v, want 2 words", analysis.LoadedLanguage)
	}
	// Only the loaded-language factor contributes: 2*0.05 = 0.1
	if analysis.OverallBiasScore != 0.1 {
		t.Errorf("OverallBiasScore = %v, want 0.1", analysis.OverallBiasScore)
	}
}
