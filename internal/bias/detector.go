package bias

import (
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/newsproof/newsproof/internal/model"
)

// loadedLanguageLimit caps how many loaded words a report lists
const loadedLanguageLimit = 10

var positiveWords = []string{"hero", "brilliant", "outstanding", "triumph", "victory", "success"}

var negativeWords = []string{"disaster", "failure", "catastrophe", "scandal", "crisis", "outrage"}

var leftIndicators = []string{"progressive", "liberal", "socialist", "climate action", "social justice"}

var rightIndicators = []string{"conservative", "traditional", "free market", "law and order", "family values"}

// Detector analyzes article text for political lean, emotional tone,
// and loaded language. It is purely lexical; no model calls.
type Detector struct {
	cfg    model.BiasConfig
	logger *log.Logger

	// compiled word-boundary patterns, one per indicator
	positive []*regexp.Regexp
	negative []*regexp.Regexp
	left     []*regexp.Regexp
	right    []*regexp.Regexp
}

// NewDetector creates a bias detector with the given check toggles
func NewDetector(cfg model.BiasConfig, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.Default()
	}
	return &Detector{
		cfg:      cfg,
		logger:   logger,
		positive: compileIndicators(positiveWords),
		negative: compileIndicators(negativeWords),
		left:     compileIndicators(leftIndicators),
		right:    compileIndicators(rightIndicators),
	}
}

func compileIndicators(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// Detect analyzes one article. When detection is disabled the returned
// analysis carries only the Enabled flag and callers should not read
// the other fields.
func (d *Detector) Detect(article model.Article) *model.BiasAnalysis {
	if !d.cfg.Enabled {
		return &model.BiasAnalysis{Enabled: false}
	}

	text := strings.ToLower(article.Title + " " + article.Content)

	analysis := &model.BiasAnalysis{
		Enabled:       true,
		PoliticalLean: model.LeanNeutral,
		EmotionalTone: model.ToneBalanced,
	}

	if d.cfg.CheckPoliticalLean {
		analysis.PoliticalLean, analysis.PoliticalConfidence = d.detectPoliticalLean(text)
	}
	if d.cfg.CheckEmotionalTone {
		analysis.EmotionalTone = d.detectEmotionalTone(text)
	}
	if d.cfg.CheckLoadedLanguage {
		analysis.LoadedLanguage = d.detectLoadedLanguage(text)
	}

	analysis.OverallBiasScore = calculateBiasScore(analysis)
	return analysis
}

// detectPoliticalLean counts indicator occurrences on each side. A
// lean needs a better than 1.5x majority; anything closer is neutral
// with middling confidence.
func (d *Detector) detectPoliticalLean(text string) (model.PoliticalLean, float64) {
	leftScore := countMatches(text, d.left)
	rightScore := countMatches(text, d.right)
	total := leftScore + rightScore

	if total == 0 {
		return model.LeanNeutral, 0.0
	}

	switch {
	case float64(leftScore) > float64(rightScore)*1.5:
		return model.LeanLeft, leanConfidence(leftScore, total)
	case float64(rightScore) > float64(leftScore)*1.5:
		return model.LeanRight, leanConfidence(rightScore, total)
	default:
		return model.LeanNeutral, 0.5
	}
}

func leanConfidence(winning, total int) float64 {
	c := math.Min(0.9, float64(winning)/float64(total))
	return math.Round(c*100) / 100
}

func (d *Detector) detectEmotionalTone(text string) model.EmotionalTone {
	positiveCount := countMatches(text, d.positive)
	negativeCount := countMatches(text, d.negative)
	total := positiveCount + negativeCount

	if total == 0 {
		return model.ToneBalanced
	}

	ratio := float64(positiveCount) / float64(total)
	switch {
	case ratio > 0.65:
		return model.TonePositive
	case ratio < 0.35:
		return model.ToneNegative
	default:
		return model.ToneBalanced
	}
}

// detectLoadedLanguage returns the distinct loaded words present in
// the text, positive lexicon first, capped at ten entries.
func (d *Detector) detectLoadedLanguage(text string) []string {
	var found []string

	appendHits := func(words []string, patterns []*regexp.Regexp) {
		for i, p := range patterns {
			if len(found) >= loadedLanguageLimit {
				return
			}
			if p.MatchString(text) {
				found = append(found, words[i])
			}
		}
	}

	appendHits(positiveWords, d.positive)
	appendHits(negativeWords, d.negative)
	return found
}

func countMatches(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, p := range patterns {
		count += len(p.FindAllStringIndex(text, -1))
	}
	return count
}

// calculateBiasScore folds the three checks into one 0..1 score. A
// detected lean contributes its confidence at 0.4 weight, an
// unbalanced tone a flat 0.3, and loaded language 0.05 per word up to
// 0.3.
func calculateBiasScore(a *model.BiasAnalysis) float64 {
	score := 0.0

	if a.PoliticalLean != model.LeanNeutral {
		score += a.PoliticalConfidence * 0.4
	}
	if a.EmotionalTone != model.ToneBalanced {
		score += 0.3
	}
	if n := len(a.LoadedLanguage); n > 0 {
		score += math.Min(0.3, float64(n)*0.05)
	}

	return math.Round(math.Min(1.0, score)*100) / 100
}
