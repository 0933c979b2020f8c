// Package deps builds the inter-file dependency graph from import facts and
// finds circular dependencies in it.
package deps

import (
	"path"
	"sort"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

// Candidate suffixes probed in order when resolving a relative specifier.
var (
	resolveExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".py"}
	indexCandidates   = []string{"index.js", "index.ts", "index.jsx", "index.tsx", "__init__.py"}
)

type memoKey struct {
	fromFile  string
	specifier string
}

// Resolver resolves relative import specifiers against the analyzed file
// set. The memoization cache lives for one BuildGraph call; a Resolver must
// not be shared across concurrent runs.
type Resolver struct {
	known map[string]struct{}
	// memo caches both hits and misses; a miss is stored as "".
	memo map[memoKey]string
}

// NewResolver creates a resolver over the analyzed file set.
func NewResolver(files map[string]domain.FileFact) *Resolver {
	known := make(map[string]struct{}, len(files))
	for p := range files {
		known[p] = struct{}{}
	}
	return &Resolver{
		known: known,
		memo:  make(map[memoKey]string),
	}
}

// BuildGraph resolves every import of every non-error file into a dependency
// graph. Relative specifiers resolve to in-repo paths; anything else is
// recorded verbatim as an external module. Unresolvable relative imports are
// silently dropped. Files with no dependencies are omitted.
func BuildGraph(files map[string]domain.FileFact) domain.DependencyGraph {
	r := NewResolver(files)
	graph := make(domain.DependencyGraph)

	for filePath, fact := range files {
		if fact.Error != "" {
			continue
		}

		seen := make(map[string]struct{})
		var depsList []string
		for specifier, names := range fact.Imports {
			if len(names) == 0 {
				continue
			}

			dep := specifier
			if strings.HasPrefix(specifier, ".") {
				resolved, ok := r.Resolve(filePath, specifier)
				if !ok {
					continue
				}
				dep = resolved
			}

			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			depsList = append(depsList, dep)
		}

		if len(depsList) == 0 {
			continue
		}
		sort.Strings(depsList)
		graph[filePath] = depsList
	}

	return graph
}

// Resolve maps a relative specifier from the given file to an analyzed file
// path. Both hits and misses are memoized per (fromFile, specifier).
func (r *Resolver) Resolve(fromFile, specifier string) (string, bool) {
	key := memoKey{fromFile: fromFile, specifier: specifier}
	if cached, ok := r.memo[key]; ok {
		return cached, cached != ""
	}

	resolved := r.resolve(fromFile, specifier)
	r.memo[key] = resolved
	return resolved, resolved != ""
}

func (r *Resolver) resolve(fromFile, specifier string) string {
	base := path.Clean(path.Join(path.Dir(fromFile), specifier))

	// "." is the repo root itself, never a file, but its index candidates
	// (a root-level __init__.py or index.js) are still fair game.
	if base != "." {
		if r.exists(base) {
			return base
		}
		for _, ext := range resolveExtensions {
			if candidate := base + ext; r.exists(candidate) {
				return candidate
			}
		}
	}
	for _, index := range indexCandidates {
		if candidate := path.Join(base, index); r.exists(candidate) {
			return candidate
		}
	}
	return ""
}

func (r *Resolver) exists(p string) bool {
	_, ok := r.known[p]
	return ok
}
