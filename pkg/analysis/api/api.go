// Package api detects HTTP endpoint definitions in a FileFact corpus.
//
// Detection per framework is guarded by import presence, then driven by
// upstream hints where available and structural heuristics (naming
// conventions, decorators, base classes, file-path conventions) otherwise.
package api

import (
	"sort"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

// Detector finds API endpoints. It is a pure, read-only function over the
// fact map and is safe to run concurrently with the other detectors.
type Detector struct{}

// NewDetector creates an API endpoint detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns all detected endpoints sorted by (file, line).
func (d *Detector) Detect(files map[string]domain.FileFact) []domain.APIEndpoint {
	var out []domain.APIEndpoint

	for path, fact := range files {
		if fact.Error != "" {
			continue
		}
		out = append(out, detectExpress(path, &fact)...)
		out = append(out, detectNest(path, &fact)...)
		out = append(out, detectDjango(path, &fact)...)
		out = append(out, detectFlask(path, &fact)...)
		out = append(out, detectFastAPI(path, &fact)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Route < out[j].Route
	})

	return out
}

func newEndpoint(framework, file string, line int, handler, method, route, heuristic string) (domain.APIEndpoint, bool) {
	// Records missing a method or route are dropped, never emitted with an
	// empty required field.
	if method == "" || route == "" {
		return domain.APIEndpoint{}, false
	}
	return domain.APIEndpoint{
		Framework:  framework,
		File:       file,
		Line:       line,
		Handler:    handler,
		Method:     strings.ToUpper(method),
		Route:      route,
		Parameters: ExtractRouteParams(route),
		Metadata:   map[string]string{"heuristic": heuristic},
	}, true
}

// functionName strips the parameter list from a signature map key.
func functionName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return strings.TrimSpace(signature[:i])
	}
	return signature
}

// firstParam returns the first declared parameter name, or "".
func firstParam(fn *domain.FunctionFact) string {
	if len(fn.Parameters) == 0 {
		return ""
	}
	return fn.Parameters[0]
}
