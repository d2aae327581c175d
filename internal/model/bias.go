package model

// PoliticalLean classifies the political slant of an article
type PoliticalLean string

const (
	LeanLeft    PoliticalLean = "left"
	LeanRight   PoliticalLean = "right"
	LeanNeutral PoliticalLean = "neutral"
)

// EmotionalTone classifies the emotional coloring of an article
type EmotionalTone string

const (
	TonePositive EmotionalTone = "positive"
	ToneNegative EmotionalTone = "negative"
	ToneBalanced EmotionalTone = "balanced"
)

// BiasAnalysis is the article-level bias assessment, independent of
// claim verification. When detection is disabled only Enabled is set.
type BiasAnalysis struct {
	Enabled             bool          `json:"bias_detection_enabled"`
	PoliticalLean       PoliticalLean `json:"political_lean,omitempty"`
	PoliticalConfidence float64       `json:"political_confidence"` // [0,1]
	EmotionalTone       EmotionalTone `json:"emotional_tone,omitempty"`
	LoadedLanguage      []string      `json:"loaded_language,omitempty"`
	OverallBiasScore    float64       `json:"overall_bias_score"` // 0 = unbiased, 1 = heavily biased
}
