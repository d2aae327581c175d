package model

// Verdict is the categorical outcome of verifying a claim
type Verdict string

const (
	VerdictTrue         Verdict = "true"         // Evidence strongly supports the claim
	VerdictFalse        Verdict = "false"        // Evidence contradicts the claim
	VerdictMisleading   Verdict = "misleading"   // Partially true, missing important context
	VerdictUnverifiable Verdict = "unverifiable" // Insufficient or conflicting evidence
	VerdictError        Verdict = "error"        // Verification itself failed
)

// IsValid reports whether v is one of the five enumerated verdicts.
// Anything else coming back from the model is treated as a parse
// failure, never passed through.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictTrue, VerdictFalse, VerdictMisleading, VerdictUnverifiable, VerdictError:
		return true
	}
	return false
}

// VerificationResult is the terminal per-claim verification outcome
type VerificationResult struct {
	Claim                string   `json:"claim"`
	Verdict              Verdict  `json:"verdict"`
	Confidence           float64  `json:"confidence"` // [0,1]
	Reasoning            string   `json:"reasoning"`
	SupportingSources    []string `json:"supporting_sources,omitempty"`
	ContradictingSources []string `json:"contradicting_sources,omitempty"`
	EvidenceCount        int      `json:"evidence_count"`
}
