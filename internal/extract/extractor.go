package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/newsproof/newsproof/internal/llm"
	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/util"
)

// contentLimit caps how much article body is sent to the model
const contentLimit = 2000

const extractSystemPrompt = `You are a fact-checking assistant that identifies verifiable claims in news articles.

Your task is to extract factual claims that can be verified through research. Focus on:
1. Specific factual statements (numbers, dates, events, quotes)
2. Claims that can be proven true or false
3. Statements attributed to specific sources
4. Statistical or scientific claims

Avoid:
- Opinions or subjective statements
- Predictions or speculation
- General statements without specifics
- Claims that are inherently unverifiable

For each claim, identify:
- The exact claim text
- The type of claim (statistical, event, quote, scientific)
- Who/what is making the claim
- Why it's important to verify

Output as JSON array.`

// ClaimExtractor turns article text into a bounded list of checkable
// claims. The model path is primary; regex rules are the fallback when
// the model fails or returns something unparseable.
type ClaimExtractor struct {
	provider llm.Provider
	logger   *log.Logger
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, logger *log.Logger) *ClaimExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &ClaimExtractor{
		provider: provider,
		logger:   logger,
	}
}

// Extract extracts up to maxClaims verifiable claims from the article.
// Every claim is stamped with the article's id, title, and source
// before being returned. Extraction never fails: model errors degrade
// to rule-based extraction.
func (e *ClaimExtractor) Extract(ctx context.Context, article model.Article, maxClaims int) []model.Claim {
	content := util.CleanText(article.Content)
	if content == "" {
		e.logger.Printf("extract: no content in article: %s", article.Title)
		return nil
	}

	claims, err := e.extractWithModel(ctx, article.Title, content, maxClaims)
	if err != nil {
		e.logger.Printf("extract: model extraction failed (%v), falling back to rules", err)
		claims = ExtractWithRules(content, maxClaims)
	}

	for i := range claims {
		claims[i].ArticleID = article.ID
		claims[i].ArticleTitle = article.Title
		claims[i].Source = article.SourceName
	}

	return claims
}

// rawClaim mirrors the JSON shape the model is asked to emit
type rawClaim struct {
	Claim      string `json:"claim"`
	Type       string `json:"type"`
	Subject    string `json:"subject"`
	Importance string `json:"importance"`
	Context    string `json:"context"`
}

func (e *ClaimExtractor) extractWithModel(ctx context.Context, title, content string, maxClaims int) ([]model.Claim, error) {
	prompt := fmt.Sprintf(`Article Title: %s

Article Content:
%s

Extract up to %d verifiable claims from this article.

Output format (JSON array):
[
  {
    "claim": "The exact claim statement",
    "type": "statistical|event|quote|scientific|other",
    "subject": "Who/what the claim is about",
    "importance": "Why this claim matters",
    "context": "Surrounding context from article"
  }
]`, title, util.Truncate(content, contentLimit), maxClaims)

	response, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: extractSystemPrompt,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	raw, err := parseClaimList(response)
	if err != nil {
		return nil, err
	}

	if len(raw) > maxClaims {
		raw = raw[:maxClaims]
	}

	claims := make([]model.Claim, 0, len(raw))
	for _, rc := range raw {
		if strings.TrimSpace(rc.Claim) == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Text:       rc.Claim,
			Type:       model.ParseClaimType(rc.Type),
			Subject:    rc.Subject,
			Importance: rc.Importance,
			Context:    rc.Context,
		})
	}
	return claims, nil
}

// parseClaimList accepts either a bare JSON array or an object with a
// "claims" key, the two shapes models actually produce.
func parseClaimList(response string) ([]rawClaim, error) {
	trimmed := strings.TrimSpace(response)

	var asList []rawClaim
	if err := json.Unmarshal([]byte(trimmed), &asList); err == nil {
		return asList, nil
	}

	var asObject struct {
		Claims []rawClaim `json:"claims"`
	}
	if err := json.Unmarshal([]byte(trimmed), &asObject); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	if asObject.Claims == nil {
		return nil, fmt.Errorf("%w: no claims field in response object", llm.ErrMalformedResponse)
	}
	return asObject.Claims, nil
}
