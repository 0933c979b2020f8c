package domain

// RootFolder is the folder key used for files at the repository top level.
const RootFolder = "root"

// FrameworkDetection is one confidence-scored framework found in the corpus.
type FrameworkDetection struct {
	// Name is the framework name (e.g., "React", "Django").
	Name string `json:"name"`
	// Confidence is the normalized score in [0,1].
	Confidence float64 `json:"confidence"`
	// Files are the deduplicated, sorted paths that contributed evidence.
	Files []string `json:"files"`
	// Patterns are the deduplicated, sorted ids of the patterns that matched.
	Patterns []string `json:"patterns"`
}

// RouteParameter is a parameter extracted from a route expression
// (":id" tokens and "*" wildcards).
type RouteParameter struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// APIEndpoint is a framework-attributed HTTP endpoint.
type APIEndpoint struct {
	Framework string `json:"framework"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	// Handler is the function or method implementing the endpoint.
	Handler string `json:"handler"`
	// Controller is the containing class, when the endpoint is a method.
	Controller string           `json:"controller,omitempty"`
	Method     string           `json:"method"`
	Route      string           `json:"route"`
	Parameters []RouteParameter `json:"parameters,omitempty"`
	// Metadata names the heuristic that produced this record.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// StatePattern is a framework-attributed state mutation site.
type StatePattern struct {
	Framework string `json:"framework"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	// Function is the function or method containing the mutation.
	Function string `json:"function"`
	// Type is the mutation kind (e.g., "useState", "dispatch").
	Type string `json:"type"`
	// Target is the mutated variable or action, when known.
	Target   string            `json:"target,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EventHandler is a framework-attributed event handler registration.
type EventHandler struct {
	Framework string `json:"framework"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	// Handler is the function implementing the handler.
	Handler string `json:"handler"`
	// Event is the handled event name (e.g., "click").
	Event    string            `json:"event"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Summary holds aggregate counts over the analyzed corpus.
type Summary struct {
	TotalFiles int `json:"total_files"`
	TotalLines int `json:"total_lines"`
	// Languages maps language name to file count.
	Languages map[Language]int `json:"languages,omitempty"`
	// Extensions maps file extension (with dot) to file count.
	Extensions map[string]int `json:"extensions,omitempty"`
	// Frameworks maps framework name to confidence. Populated only when
	// framework confidences are enabled in the aggregation options.
	Frameworks map[string]float64 `json:"frameworks,omitempty"`
	// Endpoints, StateChanges, and EventHandlers are the detector outputs.
	Endpoints     []APIEndpoint  `json:"api_endpoints,omitempty"`
	StateChanges  []StatePattern `json:"state_patterns,omitempty"`
	EventHandlers []EventHandler `json:"event_handlers,omitempty"`
}

// Metadata stamps provenance on a report.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	// DurationMS is the wall-clock analysis duration in milliseconds.
	DurationMS int64  `json:"duration_ms"`
	Version    string `json:"version"`
	RepoPath   string `json:"repo_path,omitempty"`
	// Error is set only when aggregation failed unexpectedly and the caller
	// substituted an otherwise-empty result.
	Error string `json:"error,omitempty"`
}

// AnalysisResult is the final project-level report.
type AnalysisResult struct {
	// FolderStructure groups file facts by containing directory. Top-level
	// files live under RootFolder. Files within a folder are sorted by path.
	FolderStructure map[string][]FileFact `json:"folder_structure"`
	Summary         Summary               `json:"summary"`
	Dependencies    DependencyInfo        `json:"dependencies"`
	Metadata        Metadata              `json:"metadata"`
}
