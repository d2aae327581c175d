package model

import "time"

// CheckedClaim bundles everything the pipeline produced for one claim:
// the claim itself, the evidence it was checked against, the verdict,
// and the fused credibility score.
type CheckedClaim struct {
	Claim            Claim              `json:"claim"`
	Evidence         []EvidenceItem     `json:"evidence"`
	Verification     VerificationResult `json:"verification"`
	CredibilityScore float64            `json:"credibility_score"` // [0,1]

	// Validation is populated only when the preset enables citation
	// link checking
	Validation []ValidationResult `json:"validation,omitempty"`
}

// FactCheckReport is the complete output of one fact_check_article run.
// The core builds it once and never persists it.
type FactCheckReport struct {
	ArticleID          string         `json:"article_id"`
	ArticleTitle       string         `json:"article_title"`
	Preset             string         `json:"preset"`
	CheckedAt          time.Time      `json:"checked_at"`
	Claims             []CheckedClaim `json:"claims"` // Report order matches extraction order
	BiasAnalysis       BiasAnalysis   `json:"bias_analysis"`
	OverallCredibility float64        `json:"overall_credibility"` // Mean of per-claim scores, 0.0 with no claims
	Summary            Summary        `json:"summary"`
}

// Summary condenses the report for quick consumption
type Summary struct {
	Message            string              `json:"message,omitempty"`
	ClaimsChecked      int                 `json:"claims_checked"`
	Verdicts           map[Verdict]int     `json:"verdicts,omitempty"`
	VerdictPercentages map[Verdict]float64 `json:"verdict_percentages,omitempty"`
	BiasScore          float64             `json:"bias_score"`
	PoliticalLean      PoliticalLean       `json:"political_lean,omitempty"`
}
