package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/newsproof/newsproof/internal/model"
)

// verdictOrder fixes the rendering order of verdict buckets
var verdictOrder = []model.Verdict{
	model.VerdictTrue,
	model.VerdictFalse,
	model.VerdictMisleading,
	model.VerdictUnverifiable,
	model.VerdictError,
}

// Renderer writes fact-check reports as JSON or Markdown
type Renderer struct {
	verbose bool
}

// NewRenderer creates a report renderer
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.FactCheckReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown file
func (r *Renderer) RenderMarkdown(report *model.FactCheckReport, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Fact-Check Report: %s\n\n", report.ArticleTitle)
	fmt.Fprintf(&sb, "- **Article ID:** %s\n", report.ArticleID)
	fmt.Fprintf(&sb, "- **Preset:** %s\n", report.Preset)
	fmt.Fprintf(&sb, "- **Checked at:** %s\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&sb, "- **Overall credibility:** %.2f\n\n", report.OverallCredibility)

	if report.Summary.Message != "" {
		fmt.Fprintf(&sb, "%s\n", report.Summary.Message)
		return os.WriteFile(path, []byte(sb.String()), 0o644)
	}

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "%d claims checked.\n\n", report.Summary.ClaimsChecked)
	sb.WriteString("| Verdict | Count | Share |\n|---------|-------|-------|\n")
	for _, verdict := range sortedVerdicts(report.Summary.Verdicts) {
		fmt.Fprintf(&sb, "| %s | %d | %.1f%% |\n", verdict, report.Summary.Verdicts[verdict], report.Summary.VerdictPercentages[verdict])
	}
	sb.WriteString("\n")

	if report.BiasAnalysis.Enabled {
		sb.WriteString("## Bias Analysis\n\n")
		fmt.Fprintf(&sb, "- **Political lean:** %s (confidence %.2f)\n", report.BiasAnalysis.PoliticalLean, report.BiasAnalysis.PoliticalConfidence)
		fmt.Fprintf(&sb, "- **Emotional tone:** %s\n", report.BiasAnalysis.EmotionalTone)
		if len(report.BiasAnalysis.LoadedLanguage) > 0 {
			fmt.Fprintf(&sb, "- **Loaded language:** %s\n", strings.Join(report.BiasAnalysis.LoadedLanguage, ", "))
		}
		fmt.Fprintf(&sb, "- **Overall bias score:** %.2f\n\n", report.BiasAnalysis.OverallBiasScore)
	}

	for i, claim := range report.Claims {
		fmt.Fprintf(&sb, "## Claim %d: %s\n\n", i+1, claim.Claim.Text)
		fmt.Fprintf(&sb, "- **Type:** %s\n", claim.Claim.Type)
		fmt.Fprintf(&sb, "- **Verdict:** %s (confidence %.2f)\n", claim.Verification.Verdict, claim.Verification.Confidence)
		fmt.Fprintf(&sb, "- **Credibility score:** %.2f\n", claim.CredibilityScore)
		if claim.Verification.Reasoning != "" {
			fmt.Fprintf(&sb, "- **Reasoning:** %s\n", claim.Verification.Reasoning)
		}
		sb.WriteString("\n")

		if len(claim.Evidence) > 0 {
			fmt.Fprintf(&sb, "### Evidence (%d sources)\n\n", len(claim.Evidence))
			for _, ev := range claim.Evidence {
				line := fmt.Sprintf("- [%s] %s (relevance %.2f)", ev.Provider, ev.SourceName, ev.Relevance)
				if ev.URL != "" && ev.URL != ev.SourceName {
					line += fmt.Sprintf(" <%s>", ev.URL)
				}
				sb.WriteString(line + "\n")
			}
			sb.WriteString("\n")
		}

		if len(claim.Validation) > 0 {
			renderValidation(&sb, claim.Validation)
		}
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func renderValidation(sb *strings.Builder, validation []model.ValidationResult) {
	dead := 0
	stale := 0
	for _, v := range validation {
		if v.IsDead {
			dead++
		}
		if v.IsStale {
			stale++
		}
	}
	fmt.Fprintf(sb, "### Citation Check\n\n%d citations probed, %d dead, %d stale.\n\n", len(validation), dead, stale)
	if dead > 0 || stale > 0 {
		for _, v := range validation {
			if !v.IsDead && !v.IsStale {
				continue
			}
			flag := "stale"
			if v.IsDead {
				flag = "dead"
			}
			fmt.Fprintf(sb, "- %s: %s\n", flag, v.URL)
		}
		sb.WriteString("\n")
	}
}

// RenderSummary prints a terminal summary of the report
func (r *Renderer) RenderSummary(report *model.FactCheckReport, w io.Writer) {
	fmt.Fprintf(w, "\nFact-check: %s\n", report.ArticleTitle)
	fmt.Fprintf(w, "Preset: %s\n", report.Preset)

	if report.Summary.Message != "" {
		fmt.Fprintf(w, "%s\n", report.Summary.Message)
		return
	}

	fmt.Fprintf(w, "Claims checked: %d\n", report.Summary.ClaimsChecked)
	fmt.Fprintf(w, "Overall credibility: %.2f\n", report.OverallCredibility)

	for _, verdict := range sortedVerdicts(report.Summary.Verdicts) {
		fmt.Fprintf(w, "  %-13s %d (%.1f%%)\n", string(verdict)+":", report.Summary.Verdicts[verdict], report.Summary.VerdictPercentages[verdict])
	}

	if report.BiasAnalysis.Enabled {
		fmt.Fprintf(w, "Bias: lean=%s tone=%s score=%.2f\n",
			report.BiasAnalysis.PoliticalLean, report.BiasAnalysis.EmotionalTone, report.BiasAnalysis.OverallBiasScore)
	}

	if r.verbose {
		for i, claim := range report.Claims {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, claim.Verification.Verdict, claim.Claim.Text)
		}
	}
}

// sortedVerdicts returns the verdicts present in the summary in fixed
// rendering order, then any unknown verdicts alphabetically.
func sortedVerdicts(verdicts map[model.Verdict]int) []model.Verdict {
	known := make(map[model.Verdict]bool, len(verdictOrder))
	var out []model.Verdict
	for _, v := range verdictOrder {
		known[v] = true
		if _, ok := verdicts[v]; ok {
			out = append(out, v)
		}
	}

	var extra []model.Verdict
	for v := range verdicts {
		if !known[v] {
			extra = append(extra, v)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
