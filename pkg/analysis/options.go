package analysis

import (
	"github.com/repolens/core/pkg/analysis/catalog"
	"github.com/repolens/core/pkg/analysis/deps"
)

// Options configures an Aggregator.
type Options struct {
	// Catalog is the pattern catalog used for framework detection.
	// Nil means catalog.Default().
	Catalog *catalog.Catalog

	// MaxCircularDepth bounds cycle-detection DFS depth.
	// Zero or negative means deps.DefaultMaxDepth.
	MaxCircularDepth int

	// IncludeFrameworks controls whether framework confidences appear in
	// the summary. Default: true (opt out via WithFrameworks(false)).
	IncludeFrameworks bool

	// RepoPath is stamped into the report metadata.
	RepoPath string
}

// Option is a functional option for configuring an Aggregator.
type Option func(*Options)

// WithCatalog sets the pattern catalog used for framework detection.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Options) {
		o.Catalog = cat
	}
}

// WithMaxCircularDepth bounds the cycle-detection DFS depth.
// Non-positive values are ignored.
func WithMaxCircularDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxCircularDepth = depth
		}
	}
}

// WithFrameworks enables or disables framework confidences in the summary.
func WithFrameworks(enabled bool) Option {
	return func(o *Options) {
		o.IncludeFrameworks = enabled
	}
}

// WithRepoPath sets the repository path stamped into report metadata.
func WithRepoPath(path string) Option {
	return func(o *Options) {
		o.RepoPath = path
	}
}

func applyDefaults(o *Options) {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.MaxCircularDepth <= 0 {
		o.MaxCircularDepth = deps.DefaultMaxDepth
	}
}

func newDefaultOptions() Options {
	return Options{IncludeFrameworks: true}
}
