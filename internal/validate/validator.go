package validate

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/newsproof/newsproof/internal/model"
	"github.com/newsproof/newsproof/internal/util"
)

const maxRetries = 3

// staleAgeDays marks citations older than a year as stale
const staleAgeDays = 365

// Validator probes citation URLs with HEAD requests to flag dead and
// stale links. Results are diagnostics only; they never feed back into
// verdicts or evidence ranking.
type Validator struct {
	httpClient *http.Client
	maxWorkers int
	robots     *util.RobotsChecker
	userAgent  string
	logger     *log.Logger

	// sleep is replaceable in tests to skip real backoff
	sleep func(time.Duration)
}

// NewValidator creates a citation validator. A nil robots checker
// disables robots.txt consultation.
func NewValidator(timeout time.Duration, maxWorkers int, userAgent string, robots *util.RobotsChecker, logger *log.Logger) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Validator{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		robots:     robots,
		userAgent:  userAgent,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Validate probes the web citations in the evidence set concurrently.
// Only web-provider items carrying a URL are checked; results come
// back in the same order as their source items.
func (v *Validator) Validate(ctx context.Context, evidence []model.EvidenceItem) []model.ValidationResult {
	var urls []string
	for _, ev := range evidence {
		if ev.Provider == model.ProviderWeb && ev.URL != "" {
			urls = append(urls, ev.URL)
		}
	}
	if len(urls) == 0 {
		return []model.ValidationResult{}
	}

	results := make([]model.ValidationResult, len(urls))
	semaphore := make(chan struct{}, v.maxWorkers)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ValidationResult{
					URL:   rawURL,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.validateWithRetry(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

func (v *Validator) validateSingle(ctx context.Context, rawURL string) model.ValidationResult {
	result := model.ValidationResult{URL: rawURL}

	if v.robots != nil && !v.robots.IsAllowed(ctx, rawURL) {
		result.Error = "blocked by robots.txt"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	} else if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		result.IsDead = true
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			ageDays := int(time.Since(t).Hours() / 24)
			result.AgeDays = &ageDays
			if ageDays > staleAgeDays {
				result.IsStale = true
			}
		}
	}

	return result
}

// validateWithRetry retries transient failures with exponential backoff
func (v *Validator) validateWithRetry(ctx context.Context, rawURL string) model.ValidationResult {
	var result model.ValidationResult
	for attempt := 0; attempt < maxRetries; attempt++ {
		result = v.validateSingle(ctx, rawURL)
		if !isRetryable(result) {
			return result
		}
		if attempt < maxRetries-1 {
			v.sleep(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return result
}

// isRetryable reports whether a result indicates a transient failure
func isRetryable(result model.ValidationResult) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if result.Error != "" && isRetryableNetworkError(result.Error) {
		return true
	}
	return false
}

func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
