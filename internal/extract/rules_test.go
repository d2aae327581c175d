package extract

import (
	"strings"
	"testing"

	"github.com/newsproof/newsproof/internal/model"
)

func TestExtractWithRules_Quotes(t *testing.T) {
	content := `"We will double production next year", said Jane Smith. The rest of the article follows.`

	claims := ExtractWithRules(content, 5)

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Type != model.ClaimTypeQuote {
		t.Errorf("Expected quote type, got %s", claims[0].Type)
	}
	if claims[0].Text != "We will double production next year" {
		t.Errorf("Unexpected claim text: %q", claims[0].Text)
	}
	if !strings.HasPrefix(claims[0].Subject, "Jane Smith") {
		t.Errorf("Expected subject attributed to speaker, got %q", claims[0].Subject)
	}
	if claims[0].Importance != "Attributed statement" {
		t.Errorf("Unexpected importance: %q", claims[0].Importance)
	}
}

func TestExtractWithRules_Statistics(t *testing.T) {
	content := `A recent survey found that 72% of developers use open source daily. Funding reached 3.5 billion dollars last year.`

	claims := ExtractWithRules(content, 5)

	statCount := 0
	for _, claim := range claims {
		if claim.Type == model.ClaimTypeStatistical {
			statCount++
			if claim.Importance != "Statistical claim" {
				t.Errorf("Unexpected importance: %q", claim.Importance)
			}
		}
	}
	if statCount < 2 {
		t.Errorf("Expected at least 2 statistical claims, got %d", statCount)
	}
}

func TestExtractWithRules_Events(t *testing.T) {
	content := `The summit took place in Geneva last week. Nothing else of note.`

	claims := ExtractWithRules(content, 5)

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Type != model.ClaimTypeEvent {
		t.Errorf("Expected event type, got %s", claims[0].Type)
	}
	if claims[0].Subject != "Event claim" {
		t.Errorf("Unexpected subject: %q", claims[0].Subject)
	}
}

func TestExtractWithRules_CapAcrossPatterns(t *testing.T) {
	content := `"First quote here", said Alice Jones. 50% of users agreed with the statement. The launch occurred in Berlin yesterday.`

	claims := ExtractWithRules(content, 2)

	if len(claims) != 2 {
		t.Fatalf("Expected cap of 2 claims, got %d", len(claims))
	}
	// Quote patterns scan first, statistics second
	if claims[0].Type != model.ClaimTypeQuote {
		t.Errorf("Expected quote first, got %s", claims[0].Type)
	}
	if claims[1].Type != model.ClaimTypeStatistical {
		t.Errorf("Expected statistic second, got %s", claims[1].Type)
	}
}

func TestExtractWithRules_ContextWindow(t *testing.T) {
	padding := strings.Repeat("x", 300)
	content := padding + ` 45% of the budget went to research. ` + padding

	claims := ExtractWithRules(content, 5)

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if len(claims[0].Context) > 450 {
		t.Errorf("Expected bounded context window, got %d chars", len(claims[0].Context))
	}
	if !strings.Contains(claims[0].Context, "45%") {
		t.Error("Expected context to contain the match")
	}
}

func TestExtractWithRules_NoMatches(t *testing.T) {
	claims := ExtractWithRules("nothing checkable in this text at all", 5)
	if len(claims) != 0 {
		t.Errorf("Expected no claims, got %d", len(claims))
	}
}
