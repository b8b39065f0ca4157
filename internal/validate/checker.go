package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/coldtrail/internal/model"
	"github.com/ppiankov/coldtrail/internal/util"
)

const checkMaxRetries = 3

// checkSleepFunc is the sleep function used between retries (injectable for tests)
var checkSleepFunc = time.Sleep

// Checker probes candidate source pages concurrently before a scan commits
// to fetching them
type Checker struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
}

// NewChecker creates a page checker
func NewChecker(timeout time.Duration, maxWorkers int, userAgent, httpProxy, httpsProxy, noProxy string) *Checker {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	proxyFunc := util.NewProxyFunc(httpProxy, httpsProxy, noProxy)

	return &Checker{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  userAgent,
		maxWorkers: maxWorkers,
	}
}

// Precheck probes all URLs concurrently. Results keep input order.
func (c *Checker) Precheck(ctx context.Context, urls []string) []model.PageStatus {
	if len(urls) == 0 {
		return []model.PageStatus{}
	}

	results := make([]model.PageStatus, len(urls))
	var wg sync.WaitGroup

	// Create semaphore to limit concurrent requests
	semaphore := make(chan struct{}, c.maxWorkers)

	for i, pageURL := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case <-ctx.Done():
				results[idx] = model.PageStatus{
					URL:   target,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}

			// Release semaphore when done
			defer func() { <-semaphore }()

			results[idx] = c.checkWithRetry(ctx, target)
		}(i, pageURL)
	}

	// Wait for all probes to complete
	wg.Wait()

	return results
}

// check probes a single page with a HEAD request
func (c *Checker) check(ctx context.Context, pageURL string) model.PageStatus {
	status := model.PageStatus{URL: pageURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pageURL, nil)
	if err != nil {
		status.Error = fmt.Sprintf("create request: %v", err)
		return status
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		status.Error = fmt.Sprintf("request failed: %v", err)
		return status
	}
	defer func() { _ = resp.Body.Close() }()

	status.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		status.Accessible = true
	}

	// Check for redirects
	if resp.Request.URL.String() != pageURL {
		status.RedirectURL = resp.Request.URL.String()
	}

	// Parse Last-Modified header
	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			status.LastModified = &t
		}
	}

	return status
}

// checkWithRetry retries transient failures with exponential backoff
func (c *Checker) checkWithRetry(ctx context.Context, pageURL string) model.PageStatus {
	var status model.PageStatus
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		status = c.check(ctx, pageURL)
		if !isRetryableStatus(status) {
			return status
		}
		if attempt < checkMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			checkSleepFunc(backoff)
		}
	}
	return status
}

// isRetryableStatus returns true for results that indicate transient failures
func isRetryableStatus(status model.PageStatus) bool {
	// Retry on 5xx server errors
	if status.StatusCode >= 500 && status.StatusCode < 600 {
		return true
	}
	// Retry on 429 rate limit
	if status.StatusCode == 429 {
		return true
	}
	// Retry on network errors (timeout, connection refused)
	if status.Error != "" {
		if isTransientNetworkError(status.Error) {
			return true
		}
	}
	return false
}

// isTransientNetworkError checks error strings for transient network failures
func isTransientNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
