package deps

import (
	"sort"

	"github.com/repolens/core/pkg/domain"
)

// DefaultMaxDepth bounds cycle-detection DFS depth. It is the sole guard
// against pathological chains arising from resolver mistakes.
const DefaultMaxDepth = 10

type cycleWalker struct {
	graph    domain.DependencyGraph
	maxDepth int
	visited  map[string]bool
	onStack  map[string]int // node -> index in path
	path     []string
	cycles   []domain.CircularDependency
}

// DetectCircular finds circular dependencies via DFS from every unvisited
// file. External dependency names are leaves and never expanded. A non-
// positive maxDepth falls back to DefaultMaxDepth.
func DetectCircular(graph domain.DependencyGraph, maxDepth int) []domain.CircularDependency {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	w := &cycleWalker{
		graph:    graph,
		maxDepth: maxDepth,
		visited:  make(map[string]bool),
		onStack:  make(map[string]int),
	}

	// Deterministic start order.
	roots := make([]string, 0, len(graph))
	for file := range graph {
		roots = append(roots, file)
	}
	sort.Strings(roots)

	for _, root := range roots {
		if !w.visited[root] {
			w.walk(root)
		}
	}

	return w.cycles
}

func (w *cycleWalker) walk(node string) {
	w.onStack[node] = len(w.path)
	w.path = append(w.path, node)

	// Depth guard: abort this branch without emitting once the path grows
	// past maxDepth.
	if len(w.path) > w.maxDepth {
		w.pop(node)
		return
	}

	for _, dep := range w.graph[node] {
		if _, internal := w.graph[dep]; !internal {
			// External modules and dependency-free files are leaves.
			continue
		}
		if start, ok := w.onStack[dep]; ok {
			w.emit(start, dep)
			continue
		}
		if !w.visited[dep] {
			w.walk(dep)
		}
	}

	w.pop(node)
	// Marked visited only after the whole branch completed, so the node can
	// still take part in cycles found from other top-level starts.
	w.visited[node] = true
}

func (w *cycleWalker) pop(node string) {
	w.path = w.path[:len(w.path)-1]
	delete(w.onStack, node)
}

// emit records the cycle running from the repeated node's first occurrence
// through the current top of the path, closed by repeating that node.
func (w *cycleWalker) emit(start int, repeated string) {
	chain := make([]string, 0, len(w.path)-start+1)
	chain = append(chain, w.path[start:]...)
	chain = append(chain, repeated)

	seen := make(map[string]struct{}, len(chain))
	files := make([]string, 0, len(chain)-1)
	for _, f := range chain {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		files = append(files, f)
	}

	w.cycles = append(w.cycles, domain.CircularDependency{
		Chain: chain,
		Files: files,
	})
}
