package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/core/pkg/domain"
)

func TestDetectCircular_TriangleCycle(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"b.js"},
		"b.js": {"c.js"},
		"c.js": {"a.js"},
	}

	cycles := DetectCircular(graph, 10)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.js", "b.js", "c.js", "a.js"}, cycles[0].Chain)
	assert.ElementsMatch(t, []string{"a.js", "b.js", "c.js"}, cycles[0].Files)
}

func TestDetectCircular_DepthGuard(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"b.js"},
		"b.js": {"c.js"},
		"c.js": {"a.js"},
	}

	cycles := DetectCircular(graph, 1)

	assert.Empty(t, cycles)
}

func TestDetectCircular_TwoFileCycle(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"b.js"},
		"b.js": {"a.js"},
	}

	cycles := DetectCircular(graph, 10)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.js", "b.js", "a.js"}, cycles[0].Chain)
	assert.ElementsMatch(t, []string{"a.js", "b.js"}, cycles[0].Files)
}

func TestDetectCircular_ExternalDepsAreLeaves(t *testing.T) {
	// "express" is not a key in the graph and must never be expanded, even
	// though both files name it.
	graph := domain.DependencyGraph{
		"a.js": {"express", "b.js"},
		"b.js": {"express"},
	}

	cycles := DetectCircular(graph, 10)

	assert.Empty(t, cycles)
}

func TestDetectCircular_AcyclicChain(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"b.js"},
		"b.js": {"c.js"},
		"c.js": {"d.js"},
	}

	cycles := DetectCircular(graph, 10)

	assert.Empty(t, cycles)
}

func TestDetectCircular_SelfImport(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"a.js"},
	}

	cycles := DetectCircular(graph, 10)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.js", "a.js"}, cycles[0].Chain)
	assert.Equal(t, []string{"a.js"}, cycles[0].Files)
}

func TestDetectCircular_DefaultDepthFallback(t *testing.T) {
	graph := domain.DependencyGraph{
		"a.js": {"b.js"},
		"b.js": {"a.js"},
	}

	// Non-positive maxDepth falls back to DefaultMaxDepth.
	cycles := DetectCircular(graph, 0)

	require.Len(t, cycles, 1)
}

func TestDetectCircular_SharedNodeTwoCycles(t *testing.T) {
	graph := domain.DependencyGraph{
		"hub.js":   {"left.js", "right.js"},
		"left.js":  {"hub.js"},
		"right.js": {"hub.js"},
	}

	cycles := DetectCircular(graph, 10)

	require.Len(t, cycles, 2)
	for _, c := range cycles {
		assert.Equal(t, c.Chain[0], c.Chain[len(c.Chain)-1])
		assert.Contains(t, c.Files, "hub.js")
	}
}
