package model

import "time"

// Article is the immutable input to the fact-check pipeline.
// Articles are owned by the external storage collaborator; the
// pipeline only reads them.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	SourceName  string    `json:"source_name"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
