package scanner

import "time"

// Options configures scanner behavior.
type Options struct {
	// ExcludePatterns specifies directory names to skip during discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// IncludePatterns specifies doublestar globs to filter files.
	// Empty means every candidate is processed.
	IncludePatterns []string

	// MaxFileSize is the maximum file size in bytes to read.
	// Files larger than this are skipped.
	MaxFileSize int64

	// Timeout is the maximum duration for the entire scan.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file readers.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Scanner.
type Option func(*Options)

// WithWorkers sets the number of concurrent file readers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the scan timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithMaxFileSize sets the maximum file size to read.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSize = size
		}
	}
}

// WithExcludePatterns adds directory patterns to skip during discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithIncludePatterns sets glob patterns to filter discovered files.
func WithIncludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.IncludePatterns = patterns
	}
}

func applyDefaults(o *Options) {
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
}
