package score

import (
	"log"
	"math"
	"strings"

	"github.com/newsproof/newsproof/internal/model"
)

// defaultSourceRating is applied to sources not in the ratings table
const defaultSourceRating = 0.70

type sourceRating struct {
	name   string
	rating float64
}

// CredibilityScorer rates sources against a reputation table and folds
// source reputation together with verification confidence into one
// claim-level credibility score.
//
// The scorer is not safe for concurrent use with AddCustomSource;
// register custom sources before scoring starts.
type CredibilityScorer struct {
	// ratings are matched in order; the first substring hit wins
	ratings        []sourceRating
	sourceWeight   float64
	evidenceWeight float64
	logger         *log.Logger
}

// NewCredibilityScorer creates a scorer with the built-in reputation
// table and the given component weights.
func NewCredibilityScorer(cfg model.CredibilityConfig, logger *log.Logger) *CredibilityScorer {
	if logger == nil {
		logger = log.Default()
	}
	return &CredibilityScorer{
		ratings:        defaultRatings(),
		sourceWeight:   cfg.SourceWeight,
		evidenceWeight: cfg.EvidenceWeight,
		logger:         logger,
	}
}

func defaultRatings() []sourceRating {
	return []sourceRating{
		// Tier 1: highly credible
		{"reuters", 0.96},
		{"associated press", 0.96},
		{"bbc", 0.95},
		{"the guardian", 0.92},
		{"new york times", 0.93},
		{"washington post", 0.91},
		{"nature", 0.97},
		{"science", 0.97},
		{"arxiv", 0.90},

		// Tier 2: generally credible
		{"npr", 0.89},
		{"the economist", 0.88},
		{"wired", 0.85},
		{"the verge", 0.82},
	}
}

// ScoreSource returns the reputation rating for a source name. The
// lookup is a case-insensitive substring match, so "Knowledge Base:
// reuters-2024" matches "reuters". Unknown sources get the default
// rating.
func (s *CredibilityScorer) ScoreSource(sourceName string) float64 {
	lower := strings.ToLower(sourceName)
	for _, sr := range s.ratings {
		if strings.Contains(lower, sr.name) {
			return sr.rating
		}
	}
	return defaultSourceRating
}

// ScoreClaim combines average source reputation with verification
// confidence using the configured weights. With no evidence the source
// component falls back to 0.5. The result is rounded to two decimals.
func (s *CredibilityScorer) ScoreClaim(verification *model.VerificationResult, evidence []model.EvidenceItem) float64 {
	avgSource := 0.5
	if len(evidence) > 0 {
		var sum float64
		for _, ev := range evidence {
			sum += s.ScoreSource(ev.SourceName)
		}
		avgSource = sum / float64(len(evidence))
	}

	confidence := 0.5
	if verification != nil {
		confidence = verification.Confidence
	}

	overall := avgSource*s.sourceWeight + confidence*s.evidenceWeight
	return math.Round(overall*100) / 100
}

// AddCustomSource registers or overrides a reputation rating. Ratings
// outside [0, 1] are clamped. Custom entries take precedence over the
// built-in table.
func (s *CredibilityScorer) AddCustomSource(sourceName string, rating float64) {
	if rating < 0 {
		rating = 0
	}
	if rating > 1 {
		rating = 1
	}

	name := strings.ToLower(sourceName)
	for i, sr := range s.ratings {
		if sr.name == name {
			s.ratings[i].rating = rating
			s.logger.Printf("score: updated source rating: %s = %.2f", sourceName, rating)
			return
		}
	}
	s.ratings = append([]sourceRating{{name, rating}}, s.ratings...)
	s.logger.Printf("score: added custom source rating: %s = %.2f", sourceName, rating)
}
