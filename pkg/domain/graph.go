package domain

// DependencyGraph maps a repo-relative file path to its deduplicated,
// lexicographically sorted dependency identifiers. An identifier is either
// the resolved path of another analyzed file or the verbatim specifier of an
// external module. Files with no dependencies are omitted.
type DependencyGraph map[string][]string

// CircularDependency describes one import cycle.
type CircularDependency struct {
	// Chain is the ordered file path sequence forming the cycle; the first
	// element is repeated as the last to close the loop.
	Chain []string `json:"chain"`
	// Files is the deduplicated set of files participating in the cycle,
	// in chain order.
	Files []string `json:"files"`
}

// DependencyInfo is the dependency section of the final report.
type DependencyInfo struct {
	Graph    DependencyGraph      `json:"graph"`
	Circular []CircularDependency `json:"circular,omitempty"`
}
