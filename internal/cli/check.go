package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/pipeline"
	"github.com/newsproof/newsproof/internal/store"
)

var (
	checkPreset    string
	checkMaxClaims int
	checkKBName    string
	checkStore     string
	checkTimeout   time.Duration
	outJSON        string
	outMD          string
	llmProvider    string
	llmModel       string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <article.json | article-id>",
	Short: "Fact-check a single article",
	Long: `Check runs one article through the full fact-checking pipeline.

The argument is a path to a JSON article file, or, with --store, the
id of an article inside a JSON article store.

Presets:
  quick     5 sources, knowledge base + web search
  thorough  10 sources, adds academic paper search
  deep      20 sources, adds citation link validation

Example:
  newsproof check article.json
  newsproof check article.json --preset thorough --kb economics
  newsproof check a1b2c3 --store articles.json --preset deep --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkPreset, "preset", "quick", "fact-check preset (quick, thorough, deep)")
	checkCmd.Flags().IntVar(&checkMaxClaims, "max-claims", 0, "max claims to extract (0 = config default)")
	checkCmd.Flags().StringVar(&checkKBName, "kb", "", "knowledge base name for RAG search")
	checkCmd.Flags().StringVar(&checkStore, "store", "", "JSON article store to resolve the argument as an article id")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")

	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider override (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model override")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyLLMOverrides(cfg)

	article, err := resolveArticle(args[0])
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Output.Verbose)
	p, err := pipeline.NewFactCheckPipeline(cfg, logger)
	if err != nil {
		return err
	}

	report, err := p.FactCheckArticle(ctx, article, checkPreset, checkMaxClaims, checkKBName)
	if err != nil {
		return fmt.Errorf("fact-check failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Verbose)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report, os.Stdout)
	return nil
}

// resolveArticle loads the article either from a store by id or from
// a standalone JSON file.
func resolveArticle(arg string) (model.Article, error) {
	if checkStore != "" {
		s, err := store.Open(checkStore)
		if err != nil {
			return model.Article{}, err
		}
		return s.GetByID(arg)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return model.Article{}, fmt.Errorf("read article: %w", err)
	}
	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return model.Article{}, fmt.Errorf("parse article: %w", err)
	}
	if article.ID == "" {
		article.ID = arg
	}
	return article, nil
}

func applyLLMOverrides(cfg *model.Config) {
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
}

// newLogger routes pipeline progress to stderr when verbose and
// discards it otherwise.
func newLogger(verbose bool) *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}
