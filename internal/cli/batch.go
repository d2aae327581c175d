package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsproof/newsproof/internal/pipeline"
	"github.com/newsproof/newsproof/internal/store"
	"github.com/newsproof/newsproof/internal/worker"
)

var (
	batchPreset    string
	batchMaxClaims int
	batchKBName    string
	batchTimeout   time.Duration
	concurrency    int
	outputDir      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <articles.json>",
	Short: "Fact-check every article in a JSON store",
	Long: `Batch runs each article in a JSON article store through the
fact-checking pipeline and writes one report pair per article.

Articles are processed sequentially by default; --concurrency opts in
to parallel workers. Each article's run is isolated, so one failure
never stops the batch.

Example:
  newsproof batch articles.json
  newsproof batch articles.json --preset thorough --output-dir ./reports
  newsproof batch articles.json --concurrency 4 --max-claims 3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchPreset, "preset", "quick", "fact-check preset (quick, thorough, deep)")
	batchCmd.Flags().IntVar(&batchMaxClaims, "max-claims", 3, "max claims per article")
	batchCmd.Flags().StringVar(&batchKBName, "kb", "", "knowledge base name for RAG search")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of concurrent workers (1 = sequential)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./newsproof-reports", "output directory for reports")

	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider override (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model override")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyLLMOverrides(cfg)
	cfg.Concurrency.Workers = effectiveWorkers(cfg.Concurrency.Workers, concurrency, cmd.Flags().Changed("concurrency"))

	s, err := store.Open(args[0])
	if err != nil {
		return err
	}
	articles := s.List()

	fmt.Fprintf(os.Stderr, "Batch fact-check: %d articles, preset=%s, workers=%d\n",
		len(articles), batchPreset, cfg.Concurrency.Workers)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewFactCheckPipeline(cfg, newLogger(cfg.Output.Verbose))
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.Process(ctx, articles, batchPreset, batchMaxClaims, batchKBName)

	renderer := pipeline.NewRenderer(cfg.Output.Verbose)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result == nil {
			// Slot lost to a cancelled context mid-batch
			failureCount++
			continue
		}
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.ArticleID, result.Err)
			continue
		}

		slug := sanitizeFilename(result.ArticleID)
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write report: %v\n", result.ArticleID, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "ok   %s (credibility %.2f, %d claims)\n",
			result.ArticleID, result.Report.OverallCredibility, result.Report.Summary.ClaimsChecked)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d articles failed", failureCount)
	}
	return nil
}

// effectiveWorkers picks the batch worker count. The --concurrency
// flag overrides the configured value only when the user set it, so
// its default never shadows a concurrency.workers config entry.
func effectiveWorkers(configured, flag int, flagSet bool) int {
	if flagSet && flag > 0 {
		return flag
	}
	if configured <= 0 {
		return 1
	}
	return configured
}

// sanitizeFilename makes an article id safe to use as a file name
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "article"
	}
	return s
}
