// Package analysis fuses per-file structural facts into a project-level
// report: detected frameworks, API endpoints, state mutations, event
// handlers, and an inter-file dependency graph with circular-dependency
// diagnostics.
package analysis

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repolens/core/pkg/analysis/api"
	"github.com/repolens/core/pkg/analysis/deps"
	"github.com/repolens/core/pkg/analysis/detection"
	"github.com/repolens/core/pkg/analysis/event"
	"github.com/repolens/core/pkg/analysis/state"
	"github.com/repolens/core/pkg/domain"
)

// Version is stamped into report metadata.
const Version = "0.3.0"

// Aggregator orchestrates the detection phases and merges their outputs
// into one AnalysisResult. All phases are pure, read-only traversals of the
// input map and run concurrently.
type Aggregator struct {
	options Options
	scorer  *detection.Scorer
	api     *api.Detector
	state   *state.Detector
	event   *event.Detector
}

// New creates an aggregator with the given options.
func New(opts ...Option) *Aggregator {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Aggregator{
		options: options,
		scorer:  detection.NewScorer(options.Catalog),
		api:     api.NewDetector(),
		state:   state.NewDetector(),
		event:   event.NewDetector(),
	}
}

// Aggregate runs every detection phase over the fact map and merges the
// results. The input map is never mutated; enrichment is applied to clones.
func (a *Aggregator) Aggregate(ctx context.Context, files map[string]domain.FileFact, startTime time.Time) domain.AnalysisResult {
	var (
		frameworks    []domain.FrameworkDetection
		endpoints     []domain.APIEndpoint
		statePatterns []domain.StatePattern
		eventHandlers []domain.EventHandler
		graph         domain.DependencyGraph
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		frameworks = a.scorer.DetectFrameworks(files)
		return nil
	})
	g.Go(func() error {
		endpoints = a.api.Detect(files)
		return nil
	})
	g.Go(func() error {
		statePatterns = a.state.Detect(files)
		return nil
	})
	g.Go(func() error {
		eventHandlers = a.event.Detect(files)
		return nil
	})
	g.Go(func() error {
		graph = deps.BuildGraph(files)
		return nil
	})
	// Detector goroutines never fail; Wait only synchronizes them.
	_ = g.Wait()

	circular := deps.DetectCircular(graph, a.options.MaxCircularDepth)

	enriched := enrichFacts(files, statePatterns, eventHandlers)

	result := domain.AnalysisResult{
		FolderStructure: groupByFolder(enriched),
		Summary:         a.buildSummary(enriched, frameworks, endpoints, statePatterns, eventHandlers),
		Dependencies: domain.DependencyInfo{
			Graph:    graph,
			Circular: circular,
		},
		Metadata: domain.Metadata{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			DurationMS: time.Since(startTime).Milliseconds(),
			Version:    Version,
			RepoPath:   a.options.RepoPath,
		},
	}

	return result
}

// AggregateSafe wraps Aggregate with panic recovery. On an unexpected
// failure the returned result is empty aside from metadata carrying the
// error, so a partial pipeline never takes down its caller.
func (a *Aggregator) AggregateSafe(ctx context.Context, files map[string]domain.FileFact, startTime time.Time) (result domain.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.AnalysisResult{
				FolderStructure: map[string][]domain.FileFact{},
				Metadata: domain.Metadata{
					Timestamp:  time.Now().UTC().Format(time.RFC3339),
					DurationMS: time.Since(startTime).Milliseconds(),
					Version:    Version,
					RepoPath:   a.options.RepoPath,
					Error:      fmt.Sprintf("aggregation failed: %v", r),
				},
			}
		}
	}()

	return a.Aggregate(ctx, files, startTime)
}

// enrichFacts merges detected state and event records back into clones of
// the facts they were found in. API endpoints stay a separate output.
func enrichFacts(files map[string]domain.FileFact, statePatterns []domain.StatePattern, eventHandlers []domain.EventHandler) map[string]domain.FileFact {
	enriched := make(map[string]domain.FileFact, len(files))
	for p, fact := range files {
		enriched[p] = fact.Clone()
	}

	for _, sp := range statePatterns {
		fact, ok := enriched[sp.File]
		if !ok {
			continue
		}
		if sig, fn, found := findFunction(&fact, sp.Function); found {
			hint := stateHintFor(sp)
			if !hasStateHint(fn.StateChanges, hint) {
				fn.StateChanges = append(fn.StateChanges, hint)
				fact.Functions[sig] = fn
				enriched[sp.File] = fact
			}
		}
	}

	for _, eh := range eventHandlers {
		fact, ok := enriched[eh.File]
		if !ok {
			continue
		}
		if sig, fn, found := findFunction(&fact, eh.Handler); found {
			hint := eventHintFor(eh)
			if !hasEventHint(fn.EventHandlers, hint) {
				fn.EventHandlers = append(fn.EventHandlers, hint)
				fact.Functions[sig] = fn
				enriched[eh.File] = fact
			}
		}
	}

	return enriched
}

func findFunction(fact *domain.FileFact, name string) (string, domain.FunctionFact, bool) {
	for sig, fn := range fact.Functions {
		if functionName(sig) == name {
			return sig, fn, true
		}
	}
	return "", domain.FunctionFact{}, false
}

func stateHintFor(sp domain.StatePattern) domain.StateHint {
	kind := domain.StateHintSetState
	switch sp.Type {
	case "useState":
		kind = domain.StateHintUseState
	case "useRef":
		kind = domain.StateHintRefMutation
	case "dispatch":
		kind = domain.StateHintReduxDispatch
	case "createSlice", "reducer":
		kind = domain.StateHintReduxSlice
	case "commit":
		kind = domain.StateHintVuexCommit
	case "model_save", "model_delete":
		kind = domain.StateHintModelSave
	}
	return domain.StateHint{Kind: kind, Target: sp.Target}
}

func eventHintFor(eh domain.EventHandler) domain.EventHint {
	kind := domain.EventHintJSXProp
	switch eh.Metadata["heuristic"] {
	case "dom_listener":
		kind = domain.EventHintDOMListener
	case "emitter_on":
		kind = domain.EventHintEmitterOn
	case "socket_on":
		kind = domain.EventHintSocketOn
	case "signal":
		kind = domain.EventHintSignal
	}
	return domain.EventHint{Kind: kind, Event: eh.Event}
}

func hasStateHint(hints []domain.StateHint, h domain.StateHint) bool {
	for _, existing := range hints {
		if existing == h {
			return true
		}
	}
	return false
}

func hasEventHint(hints []domain.EventHint, h domain.EventHint) bool {
	for _, existing := range hints {
		if existing == h {
			return true
		}
	}
	return false
}

// groupByFolder groups facts by containing directory, with top-level files
// under domain.RootFolder. Files within a folder are sorted by path.
func groupByFolder(files map[string]domain.FileFact) map[string][]domain.FileFact {
	folders := make(map[string][]domain.FileFact)
	for p, fact := range files {
		folder := path.Dir(p)
		if folder == "." || folder == "/" {
			folder = domain.RootFolder
		}
		folders[folder] = append(folders[folder], fact)
	}

	for folder := range folders {
		sort.Slice(folders[folder], func(i, j int) bool {
			return folders[folder][i].Path < folders[folder][j].Path
		})
	}

	return folders
}

func (a *Aggregator) buildSummary(
	files map[string]domain.FileFact,
	frameworks []domain.FrameworkDetection,
	endpoints []domain.APIEndpoint,
	statePatterns []domain.StatePattern,
	eventHandlers []domain.EventHandler,
) domain.Summary {
	summary := domain.Summary{
		TotalFiles:    len(files),
		Languages:     make(map[domain.Language]int),
		Extensions:    make(map[string]int),
		Endpoints:     endpoints,
		StateChanges:  statePatterns,
		EventHandlers: eventHandlers,
	}

	for p, fact := range files {
		summary.TotalLines += fact.Lines
		summary.Languages[fact.Language]++
		if ext := path.Ext(p); ext != "" {
			summary.Extensions[ext]++
		}
	}

	if a.options.IncludeFrameworks && len(frameworks) > 0 {
		summary.Frameworks = make(map[string]float64, len(frameworks))
		for _, fw := range frameworks {
			summary.Frameworks[fw.Name] = fw.Confidence
		}
	}

	return summary
}

func functionName(signature string) string {
	for i := 0; i < len(signature); i++ {
		if signature[i] == '(' {
			end := i
			for end > 0 && signature[end-1] == ' ' {
				end--
			}
			return signature[:end]
		}
	}
	return signature
}
