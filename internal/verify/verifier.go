package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/newsproof/newsproof/internal/llm"
	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/util"
)

// evidenceSourceLimit caps how many evidence items reach the model
const evidenceSourceLimit = 10

// evidenceContentLimit caps each evidence excerpt in the prompt
const evidenceContentLimit = 500

const verifySystemPrompt = `You are a fact-checking expert who analyzes evidence to verify claims.

Your task is to:
1. Analyze the provided evidence
2. Determine if the claim is TRUE, FALSE, MISLEADING, or UNVERIFIABLE
3. Provide a confidence score (0.0 to 1.0)
4. Explain your reasoning

Verdict definitions:
- TRUE: Evidence strongly supports the claim
- FALSE: Evidence contradicts the claim
- MISLEADING: Claim is partially true but missing important context
- UNVERIFIABLE: Insufficient or conflicting evidence

Output as JSON.`

var supportiveWords = []string{"confirm", "support", "verify", "true", "accurate"}

var contradictoryWords = []string{"false", "incorrect", "misleading", "debunk", "deny"}

// Verifier weighs gathered evidence and assigns one verdict per claim.
// The model path is primary; a keyword heuristic takes over when the
// model fails or returns an invalid verdict.
type Verifier struct {
	provider llm.Provider
	logger   *log.Logger
}

// NewVerifier creates a new verifier
func NewVerifier(provider llm.Provider, logger *log.Logger) *Verifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Verifier{
		provider: provider,
		logger:   logger,
	}
}

// Verify determines a verdict for the claim from its evidence. An
// empty evidence set short-circuits to unverifiable without calling
// the model. Verify never fails: model errors degrade to the keyword
// heuristic, and an unexpected heuristic dead end yields the error
// verdict.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem) *model.VerificationResult {
	if len(evidence) == 0 {
		return &model.VerificationResult{
			Claim:         claim.Text,
			Verdict:       model.VerdictUnverifiable,
			Confidence:    0.0,
			Reasoning:     "No evidence found to verify this claim",
			EvidenceCount: 0,
		}
	}

	result, err := v.verifyWithModel(ctx, claim, evidence)
	if err != nil {
		// A dead context means the whole verification failed, not
		// just the model output; the heuristic cannot rescue it.
		if ctx.Err() != nil {
			return &model.VerificationResult{
				Claim:         claim.Text,
				Verdict:       model.VerdictError,
				Confidence:    0.0,
				Reasoning:     fmt.Sprintf("Verification error: %v", err),
				EvidenceCount: len(evidence),
			}
		}
		v.logger.Printf("verify: model verification failed (%v), falling back to heuristic", err)
		result = verifyHeuristic(claim, evidence)
	}

	result.EvidenceCount = len(evidence)
	return result
}

// rawVerdict mirrors the JSON shape the model is asked to emit
type rawVerdict struct {
	Verdict              string   `json:"verdict"`
	Confidence           float64  `json:"confidence"`
	Reasoning            string   `json:"reasoning"`
	SupportingSources    []string `json:"supporting_sources"`
	ContradictingSources []string `json:"contradicting_sources"`
}

func (v *Verifier) verifyWithModel(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem) (*model.VerificationResult, error) {
	limited := evidence
	if len(limited) > evidenceSourceLimit {
		limited = limited[:evidenceSourceLimit]
	}

	var sb strings.Builder
	for i, ev := range limited {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		name := ev.SourceName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&sb, "Source %d (%s):\n%s", i+1, name, util.Truncate(ev.Content, evidenceContentLimit))
	}

	prompt := fmt.Sprintf(`Claim to verify:
%q

Evidence gathered:
%s

Analyze the evidence and determine the verdict.

Output format (JSON):
{
  "verdict": "true|false|misleading|unverifiable",
  "confidence": 0.0-1.0,
  "reasoning": "Detailed explanation of your verdict",
  "supporting_sources": ["list", "of", "supporting", "sources"],
  "contradicting_sources": ["list", "of", "contradicting", "sources"]
}`, claim.Text, sb.String())

	response, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: verifySystemPrompt,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	verdict := model.Verdict(strings.ToLower(strings.TrimSpace(raw.Verdict)))
	if !verdict.IsValid() || verdict == model.VerdictError {
		return nil, fmt.Errorf("%w: unknown verdict %q", llm.ErrMalformedResponse, raw.Verdict)
	}

	return &model.VerificationResult{
		Claim:                claim.Text,
		Verdict:              verdict,
		Confidence:           clampConfidence(raw.Confidence),
		Reasoning:            raw.Reasoning,
		SupportingSources:    raw.SupportingSources,
		ContradictingSources: raw.ContradictingSources,
	}, nil
}

// verifyHeuristic counts supportive and contradictory keywords across
// the evidence. A verdict needs a better than 2x majority; anything
// closer is misleading.
func verifyHeuristic(claim model.Claim, evidence []model.EvidenceItem) *model.VerificationResult {
	supporting := 0
	contradicting := 0

	for _, ev := range evidence {
		content := strings.ToLower(ev.Content)
		if containsAny(content, supportiveWords) {
			supporting++
		}
		if containsAny(content, contradictoryWords) {
			contradicting++
		}
	}

	total := supporting + contradicting

	var verdict model.Verdict
	var confidence float64
	switch {
	case total == 0:
		verdict = model.VerdictUnverifiable
		confidence = 0.0
	case supporting > contradicting*2:
		verdict = model.VerdictTrue
		confidence = math.Min(0.9, float64(supporting)/float64(total))
	case contradicting > supporting*2:
		verdict = model.VerdictFalse
		confidence = math.Min(0.9, float64(contradicting)/float64(total))
	default:
		verdict = model.VerdictMisleading
		confidence = 0.5
	}

	return &model.VerificationResult{
		Claim:                claim.Text,
		Verdict:              verdict,
		Confidence:           round2(confidence),
		Reasoning:            fmt.Sprintf("Based on %d supporting and %d contradicting sources", supporting, contradicting),
		SupportingSources:    []string{},
		ContradictingSources: []string{},
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
