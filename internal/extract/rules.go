package extract

import (
	"regexp"
	"strings"

	"github.com/newsproof/newsproof/internal/model"
)

// Rule-based extraction patterns, scanned in order: attributed quotes,
// statistical phrases, then event phrases. First matches win up to the
// claim cap.
var (
	quotePattern = regexp.MustCompile(`"([^"]+)"[,\s]+(?:said|stated|claimed|announced|reported)\s+([A-Z][^,.]+)`)
	statPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?%?)\s+(?:of|percent|million|billion|thousand)\s+([^.]+)`)
	eventPattern = regexp.MustCompile(`([A-Z][^.]+(?:happened|occurred|took place|announced|launched|released)[^.]+)`)
)

// ExtractWithRules is the deterministic fallback when model extraction
// fails. It never touches the network.
func ExtractWithRules(content string, maxClaims int) []model.Claim {
	var claims []model.Claim

	for _, match := range quotePattern.FindAllStringSubmatchIndex(content, -1) {
		if len(claims) >= maxClaims {
			return claims
		}
		groups := submatches(content, match)
		claims = append(claims, model.Claim{
			Text:       groups[1],
			Type:       model.ClaimTypeQuote,
			Subject:    strings.TrimSpace(groups[2]),
			Importance: "Attributed statement",
			Context:    surrounding(content, match[0], match[1]),
		})
	}

	for _, match := range statPattern.FindAllStringSubmatchIndex(content, -1) {
		if len(claims) >= maxClaims {
			return claims
		}
		groups := submatches(content, match)
		claims = append(claims, model.Claim{
			Text:       groups[0],
			Type:       model.ClaimTypeStatistical,
			Subject:    strings.TrimSpace(groups[2]),
			Importance: "Statistical claim",
			Context:    surrounding(content, match[0], match[1]),
		})
	}

	for _, match := range eventPattern.FindAllStringSubmatchIndex(content, -1) {
		if len(claims) >= maxClaims {
			return claims
		}
		groups := submatches(content, match)
		claims = append(claims, model.Claim{
			Text:       strings.TrimSpace(groups[1]),
			Type:       model.ClaimTypeEvent,
			Subject:    "Event claim",
			Importance: "Factual event",
			Context:    surrounding(content, match[0], match[1]),
		})
	}

	return claims
}

// submatches resolves submatch index pairs into strings. Index 0 is
// the whole match.
func submatches(content string, match []int) []string {
	groups := make([]string, len(match)/2)
	for i := 0; i < len(match); i += 2 {
		if match[i] < 0 {
			continue
		}
		groups[i/2] = content[match[i]:match[i+1]]
	}
	return groups
}

// surrounding returns ~100 characters of context on either side of a match
func surrounding(content string, start, end int) string {
	from := start - 100
	if from < 0 {
		from = 0
	}
	to := end + 100
	if to > len(content) {
		to = len(content)
	}
	return content[from:to]
}
