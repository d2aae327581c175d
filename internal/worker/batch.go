package worker

import (
	"context"

	"github.com/newsproof/newsproof/internal/model"
)

// Checker fact-checks a single article. Implemented by the pipeline.
type Checker interface {
	FactCheckArticle(ctx context.Context, article model.Article, preset string, maxClaims int, kbName string) (*model.FactCheckReport, error)
}

// CheckJob fact-checks one article within a batch
type CheckJob struct {
	Index     int // Position in the input slice, used to restore order
	Article   model.Article
	Preset    string
	MaxClaims int
	KBName    string
	Checker   Checker
}

// Execute runs the fact-check
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.FactCheckArticle(ctx, j.Article, j.Preset, j.MaxClaims, j.KBName)
	return &CheckResult{
		Index:     j.Index,
		ArticleID: j.Article.ID,
		Report:    report,
		Err:       err,
	}
}

// CheckResult is the outcome of one article's fact-check
type CheckResult struct {
	Index     int
	ArticleID string
	Report    *model.FactCheckReport
	Err       error
}

// GetError returns the job error, if any
func (r *CheckResult) GetError() error {
	return r.Err
}

// BatchProcessor fact-checks multiple articles. Each article's run is
// fully isolated; one failing article never affects the others.
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor. Concurrency 1 keeps
// processing sequential, which is the default pipeline behavior.
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// Process fact-checks all articles and returns exactly one result per
// article, in input order.
func (b *BatchProcessor) Process(ctx context.Context, articles []model.Article, preset string, maxClaims int, kbName string) []*CheckResult {
	if len(articles) == 0 {
		return []*CheckResult{}
	}

	// The full batch is submitted before results are drained, so the
	// queues must hold every job or Submit blocks against a full pool.
	pool := NewBufferedPool(ctx, b.concurrency, len(articles))
	pool.Start()

	for i, article := range articles {
		pool.Submit(&CheckJob{
			Index:     i,
			Article:   article,
			Preset:    preset,
			MaxClaims: maxClaims,
			KBName:    kbName,
			Checker:   b.checker,
		})
	}

	results := pool.Wait()

	// Restore input order via the job index
	ordered := make([]*CheckResult, len(articles))
	for _, result := range results {
		cr := result.(*CheckResult)
		ordered[cr.Index] = cr
	}
	return ordered
}
