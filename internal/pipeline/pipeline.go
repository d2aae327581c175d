package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/newsproof/newsproof/internal/bias"
	"github.com/newsproof/newsproof/internal/cache"
	"github.com/newsproof/newsproof/internal/evidence"
	"github.com/newsproof/newsproof/internal/extract"
	"github.com/newsproof/newsproof/internal/llm"
	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/score"
	"github.com/newsproof/newsproof/internal/util"
	"github.com/newsproof/newsproof/internal/validate"
	"github.com/newsproof/newsproof/internal/verify"
	"github.com/newsproof/newsproof/internal/worker"
)

// FactCheckPipeline orchestrates the complete fact-check flow: claim
// extraction, evidence gathering, verification, credibility scoring,
// bias analysis, and report assembly.
type FactCheckPipeline struct {
	extractor    *extract.ClaimExtractor
	aggregator   *evidence.Aggregator
	verifier     *verify.Verifier
	scorer       *score.CredibilityScorer
	biasDetector *bias.Detector
	validator    *validate.Validator
	config       *model.Config
	logger       *log.Logger
}

// NewFactCheckPipeline wires a pipeline from config. A missing model
// identifier is the one fatal error; everything else is built with
// whatever collaborators the config names.
func NewFactCheckPipeline(cfg *model.Config, logger *log.Logger) (*FactCheckPipeline, error) {
	if logger == nil {
		logger = log.Default()
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.ProviderRatePerSecond, 5)

	var rag evidence.RAGSearcher
	if cfg.FactCheck.RAGBaseURL != "" {
		rag = evidence.NewRAGClient(cfg.FactCheck.RAGBaseURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout, limiter)
	}
	var web evidence.WebSearcher
	if cfg.FactCheck.WebSearchBaseURL != "" {
		web = evidence.NewWebClient(cfg.FactCheck.WebSearchBaseURL, cfg.FactCheck.WebSearchAPIKey, cfg.HTTP.UserAgent, cfg.HTTP.Timeout, limiter)
	}
	paper := evidence.NewArxivClient(cfg.FactCheck.PaperBaseURL, cfg.HTTP.UserAgent, limiter)

	var evidenceCache cache.Cache
	if cfg.Cache.Enabled {
		evidenceCache = cache.NewLayeredCache(cfg.Cache)
	}

	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)

	return &FactCheckPipeline{
		extractor:    extract.NewClaimExtractor(provider, logger),
		aggregator:   evidence.NewAggregator(rag, web, paper, evidenceCache, cfg.Cache.MemoryTTL, logger),
		verifier:     verify.NewVerifier(provider, logger),
		scorer:       score.NewCredibilityScorer(cfg.FactCheck.Credibility, logger),
		biasDetector: bias.NewDetector(cfg.FactCheck.Bias, logger),
		validator:    validate.NewValidator(cfg.HTTP.Timeout, cfg.Concurrency.ValidationWorkers, cfg.HTTP.UserAgent, robots, logger),
		config:       cfg,
		logger:       logger,
	}, nil
}

// FactCheckArticle runs the full pipeline on one article. The only
// error paths are an unknown preset and a cancelled context before
// work starts; per-claim failures degrade inside their stages.
func (p *FactCheckPipeline) FactCheckArticle(ctx context.Context, article model.Article, presetName string, maxClaims int, kbName string) (*model.FactCheckReport, error) {
	if presetName == "" {
		presetName = "quick"
	}
	preset, err := p.config.ResolvePreset(presetName)
	if err != nil {
		return nil, err
	}
	if maxClaims <= 0 {
		maxClaims = p.config.FactCheck.MaxClaims
	}

	p.logger.Printf("pipeline: fact-checking %q (preset=%s)", util.Truncate(article.Title, 50), presetName)

	report := &model.FactCheckReport{
		ArticleID:    article.ID,
		ArticleTitle: article.Title,
		Preset:       presetName,
		CheckedAt:    time.Now().UTC(),
		Claims:       []model.CheckedClaim{},
	}

	claims := p.extractor.Extract(ctx, article, maxClaims)
	p.logger.Printf("pipeline: extracted %d claims", len(claims))

	if len(claims) == 0 {
		report.Summary = model.Summary{
			Message:       "No verifiable claims found in article",
			ClaimsChecked: 0,
		}
		return report, nil
	}

	for _, claim := range claims {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		evidenceResult := p.aggregator.Gather(ctx, claim, presetName, preset, kbName)
		verification := p.verifier.Verify(ctx, claim, evidenceResult.Evidence)
		credibility := p.scorer.ScoreClaim(verification, evidenceResult.Evidence)

		checked := model.CheckedClaim{
			Claim:            claim,
			Evidence:         evidenceResult.Evidence,
			Verification:     *verification,
			CredibilityScore: credibility,
		}

		if preset.ValidateCitations && p.validator != nil {
			checked.Validation = p.validator.Validate(ctx, evidenceResult.Evidence)
		}

		report.Claims = append(report.Claims, checked)
	}

	report.BiasAnalysis = *p.biasDetector.Detect(article)
	report.OverallCredibility = overallCredibility(report.Claims)
	report.Summary = buildSummary(report.Claims, report.BiasAnalysis)

	p.logger.Printf("pipeline: fact-check complete, %d claims verified", len(report.Claims))
	return report, nil
}

// FactCheckBatch checks articles sequentially in input order. Failed
// articles produce nil slots so callers can line results up with
// inputs; batch concurrency lives in the worker package.
func (p *FactCheckPipeline) FactCheckBatch(ctx context.Context, articles []model.Article, presetName string, maxClaimsPerArticle int, kbName string) []*model.FactCheckReport {
	reports := make([]*model.FactCheckReport, len(articles))
	for i, article := range articles {
		report, err := p.FactCheckArticle(ctx, article, presetName, maxClaimsPerArticle, kbName)
		if err != nil {
			p.logger.Printf("pipeline: article %s failed: %v", article.ID, err)
			continue
		}
		reports[i] = report
	}
	p.logger.Printf("pipeline: batch complete, %d articles processed", len(articles))
	return reports
}

func overallCredibility(claims []model.CheckedClaim) float64 {
	if len(claims) == 0 {
		return 0.0
	}
	var sum float64
	for _, c := range claims {
		sum += c.CredibilityScore
	}
	return math.Round(sum/float64(len(claims))*100) / 100
}

func buildSummary(claims []model.CheckedClaim, biasAnalysis model.BiasAnalysis) model.Summary {
	total := len(claims)

	verdicts := make(map[model.Verdict]int)
	for _, c := range claims {
		verdicts[c.Verification.Verdict]++
	}

	percentages := make(map[model.Verdict]float64, len(verdicts))
	for verdict, count := range verdicts {
		percentages[verdict] = math.Round(float64(count)/float64(total)*1000) / 10
	}

	summary := model.Summary{
		ClaimsChecked:      total,
		Verdicts:           verdicts,
		VerdictPercentages: percentages,
	}
	if biasAnalysis.Enabled {
		summary.BiasScore = biasAnalysis.OverallBiasScore
		summary.PoliticalLean = biasAnalysis.PoliticalLean
	}
	return summary
}
