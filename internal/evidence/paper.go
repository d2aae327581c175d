package evidence

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/newsproof/newsproof/internal/worker"
)

const defaultArxivBaseURL = "http://export.arxiv.org/api/query"

// paperDefaultRelevance is reported for arXiv hits; the Atom API does
// not expose a score of its own.
const paperDefaultRelevance = 0.7

// ArxivClient searches the arXiv Atom API for academic papers
type ArxivClient struct {
	baseURL string
	parser  *gofeed.Parser
	limiter *worker.Limiter
}

// NewArxivClient creates an arXiv search client. An empty baseURL uses
// the public arXiv endpoint.
func NewArxivClient(baseURL, userAgent string, limiter *worker.Limiter) *ArxivClient {
	if baseURL == "" {
		baseURL = defaultArxivBaseURL
	}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &ArxivClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		parser:  parser,
		limiter: limiter,
	}
}

// Search queries arXiv and returns up to maxResults papers
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	params := url.Values{}
	params.Set("search_query", fmt.Sprintf("all:%q", query))
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))

	feedURL := c.baseURL + "?" + params.Encode()
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("arxiv query: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(papers) >= maxResults {
			break
		}

		authors := make([]string, 0, len(item.Authors))
		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		} else {
			published = item.Published
		}

		papers = append(papers, Paper{
			Title:      strings.TrimSpace(item.Title),
			Abstract:   strings.TrimSpace(item.Description),
			URL:        item.Link,
			Authors:    authors,
			Published:  published,
			Categories: item.Categories,
			Relevance:  paperDefaultRelevance,
		})
	}

	return papers, nil
}
