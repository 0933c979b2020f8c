// Package scanner discovers source files under a repository root, reads
// them with size and encoding guards, and parses them into FileFact records
// using a bounded worker pool.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/repolens/core/pkg/domain"
	"github.com/repolens/core/pkg/parser"
)

const (
	// DefaultTimeout is the default scan timeout duration.
	DefaultTimeout = 5 * time.Minute
	// DefaultMaxFileSize is the default maximum file size to read (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names skipped during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	"build",
	".next",
	"__pycache__",
	"coverage",
	".cache",
	".venv",
}

var (
	// ErrScanCancelled is returned when scanning is cancelled via context.
	ErrScanCancelled = errors.New("scanner: scan cancelled")
	// ErrScanTimeout is returned when scanning exceeds the timeout.
	ErrScanTimeout = errors.New("scanner: scan timeout")
)

// ScanError records a non-fatal error from one phase of a scan.
type ScanError struct {
	// Err is the underlying error.
	Err error
	// Path is the file path where the error occurred (may be empty).
	Path string
	// Phase is "discovery" or "read".
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Stats summarizes a scan.
type Stats struct {
	// FilesScanned is the number of candidates discovered.
	FilesScanned int
	// FilesParsed is the number of facts produced without a parse error.
	FilesParsed int
	// FilesFailed is the number of facts carrying a parse error.
	FilesFailed int
	// FilesSkipped counts files dropped by the content guards (NUL bytes,
	// invalid UTF-8, or oversized). Read errors are reported in Errors
	// instead.
	FilesSkipped int
	// Duration is the total scan duration.
	Duration time.Duration
}

// Result is the outcome of a scan.
type Result struct {
	// Files maps repo-relative paths to their facts.
	Files map[string]domain.FileFact
	// Errors contains non-fatal errors encountered while scanning.
	Errors []ScanError
	// Stats summarizes the scan.
	Stats Stats
}

// Scanner reads a repository into a FileFact map.
type Scanner struct {
	options Options
}

// New creates a scanner with the given options.
func New(opts ...Option) *Scanner {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)
	return &Scanner{options: options}
}

// Scan walks root, reads every matching source file, and parses it into a
// FileFact. Individual file failures are recorded, never fatal; the scan
// only fails outright on timeout or cancellation.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	result := &Result{
		Files: make(map[string]domain.FileFact),
	}

	candidates, errs := s.discover(root)
	for _, err := range errs {
		result.Errors = append(result.Errors, ScanError{Err: err, Phase: "discovery"})
	}
	result.Stats.FilesScanned = len(candidates)

	s.parseParallel(ctx, root, candidates, result)

	for _, fact := range result.Files {
		if fact.Error != "" {
			result.Stats.FilesFailed++
		} else {
			result.Stats.FilesParsed++
		}
	}
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrScanTimeout
		}
		return result, ErrScanCancelled
	}

	return result, nil
}

func (s *Scanner) parseParallel(ctx context.Context, root string, candidates []string, result *Result) {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	sem := semaphore.NewWeighted(int64(workers))
	g, ctx := errgroup.WithContext(ctx)

	for _, relPath := range candidates {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			content, err := s.readGuarded(filepath.Join(root, filepath.FromSlash(relPath)))
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, ScanError{Err: err, Path: relPath, Phase: "read"})
				mu.Unlock()
				return nil
			}
			if content == nil {
				// Binary or oversized; skipped silently. Counted here so
				// read errors stay out of the skip stat.
				mu.Lock()
				result.Stats.FilesSkipped++
				mu.Unlock()
				return nil
			}

			fact := parser.ParseFile(ctx, relPath, content)

			mu.Lock()
			result.Files[relPath] = fact
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
}

// readGuarded reads one file, returning nil content (no error) for files
// the scan should silently skip: oversized, non-UTF-8, or NUL-containing.
func (s *Scanner) readGuarded(absPath string) ([]byte, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.Size() > s.options.MaxFileSize {
		return nil, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if bytes.IndexByte(content, 0) >= 0 {
		return nil, nil
	}
	if !utf8.Valid(content) {
		return nil, nil
	}

	return content, nil
}
