package model

// Claim represents a single checkable factual statement extracted
// from an article
type Claim struct {
	Text       string    `json:"claim"`                // The claim text itself
	Type       ClaimType `json:"type"`                 // statistical, event, quote, scientific, other
	Subject    string    `json:"subject,omitempty"`    // Who/what the claim is about
	Importance string    `json:"importance,omitempty"` // Why this claim matters
	Context    string    `json:"context,omitempty"`    // Surrounding text from the article

	// Article provenance, stamped by the extractor before the claim
	// leaves the component
	ArticleID    string `json:"article_id,omitempty"`
	ArticleTitle string `json:"article_title,omitempty"`
	Source       string `json:"source,omitempty"`
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistical ClaimType = "statistical" // Numeric or percentage claims
	ClaimTypeEvent       ClaimType = "event"       // Claims that something happened
	ClaimTypeQuote       ClaimType = "quote"       // Attributed statements
	ClaimTypeScientific  ClaimType = "scientific"  // Scientific or research claims
	ClaimTypeOther       ClaimType = "other"       // Everything else
)

// ParseClaimType coerces a free-form type string to a known ClaimType.
// Unrecognized values map to ClaimTypeOther.
func ParseClaimType(s string) ClaimType {
	switch ClaimType(s) {
	case ClaimTypeStatistical, ClaimTypeEvent, ClaimTypeQuote, ClaimTypeScientific, ClaimTypeOther:
		return ClaimType(s)
	default:
		return ClaimTypeOther
	}
}
