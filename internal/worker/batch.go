package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// Scanner turns one source URL into a source report
type Scanner interface {
	ScanURL(ctx context.Context, url string) (*model.SourceReport, error)
}

// ScanJob scans a single source URL
type ScanJob struct {
	URL     string
	Index   int // submission position, carried through for result ordering
	Scanner Scanner
	limiter *Limiter
}

// Execute runs the scan, pacing by host when a limiter is set
func (j *ScanJob) Execute(ctx context.Context) Result {
	if j.limiter != nil {
		if err := j.limiter.Wait(ctx, j.URL); err != nil {
			return &ScanResult{URL: j.URL, Index: j.Index, Error: err}
		}
	}

	report, err := j.Scanner.ScanURL(ctx, j.URL)
	if err != nil {
		return &ScanResult{
			URL:    j.URL,
			Index:  j.Index,
			Report: nil,
			Error:  err,
		}
	}
	return &ScanResult{
		URL:    j.URL,
		Index:  j.Index,
		Report: report,
		Error:  nil,
	}
}

// ScanResult is the outcome of one batch scan
type ScanResult struct {
	URL    string
	Index  int
	Report *model.SourceReport
	Error  error
}

// GetError returns the error from the scan result
func (r *ScanResult) GetError() error {
	return r.Error
}

// BatchProcessor scans many source URLs concurrently
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A requestsPerSecond of zero
// disables per-host pacing.
func NewBatchProcessor(scanner Scanner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessURLs scans all URLs concurrently
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*ScanResult {
	if len(urls) == 0 {
		return []*ScanResult{}
	}

	// Size the pool to the batch so every job and result fits its queue
	pool := NewPoolSized(b.concurrency, len(urls))
	pool.Start()

	for i, url := range urls {
		job := &ScanJob{
			URL:     url,
			Index:   i,
			Scanner: b.scanner,
			limiter: b.limiter,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	scanResults := make([]*ScanResult, len(results))
	for i, result := range results {
		scanResults[i] = result.(*ScanResult)
	}

	// Workers finish in arbitrary order; restore submission order so
	// batch output is deterministic for a given input file.
	sort.Slice(scanResults, func(i, j int) bool {
		return scanResults[i].Index < scanResults[j].Index
	})

	return scanResults
}

// ProcessFile reads URLs from a file and scans them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ScanResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line. Blank lines and
// comments are skipped; repeated URLs collapse to one scan.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
