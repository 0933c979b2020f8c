// Package event detects event handler registrations in a FileFact corpus:
// DOM and JSX handlers, Node EventEmitter subscriptions, and socket.io
// listeners.
package event

import (
	"regexp"
	"sort"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

// Detector finds event handlers. Pure and read-only over the fact map; safe
// to run concurrently with the other detectors.
type Detector struct{}

// NewDetector creates an event handler detector.
func NewDetector() *Detector {
	return &Detector{}
}

var handlerNaming = regexp.MustCompile(`^(handle|on)([A-Z][A-Za-z0-9]*)$`)

// Detect returns all detected event handlers sorted by (file, line).
func (d *Detector) Detect(files map[string]domain.FileFact) []domain.EventHandler {
	var out []domain.EventHandler

	for path, fact := range files {
		if fact.Error != "" {
			continue
		}
		if !fact.Language.IsJSLike() {
			continue
		}
		out = append(out, detectFile(path, &fact)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Event < out[j].Event
	})

	return out
}

func detectFile(path string, fact *domain.FileFact) []domain.EventHandler {
	framework := attributeFramework(fact)

	var out []domain.EventHandler
	for sig, fn := range fact.Functions {
		name := functionName(sig)

		matched := false
		for _, hint := range fn.EventHandlers {
			handler, ok := fromHint(framework, path, fn.LineNumber, name, hint)
			if !ok {
				continue
			}
			out = append(out, handler)
			matched = true
		}
		if matched {
			continue
		}

		// Naming convention fallback: handleClick -> click via onClick.
		if m := handlerNaming.FindStringSubmatch(name); m != nil {
			event := strings.ToLower(m[2][:1]) + m[2][1:]
			out = append(out, domain.EventHandler{
				Framework: framework,
				File:      path,
				Line:      fn.LineNumber,
				Handler:   name,
				Event:     event,
				Metadata: map[string]string{
					"heuristic": "naming",
					"jsx_prop":  "on" + m[2],
				},
			})
		}
	}
	return out
}

func fromHint(framework, path string, line int, name string, hint domain.EventHint) (domain.EventHandler, bool) {
	// A hint without an event name is dropped rather than emitted empty.
	if hint.Event == "" {
		return domain.EventHandler{}, false
	}

	heuristic := ""
	switch hint.Kind {
	case domain.EventHintDOMListener:
		heuristic = "dom_listener"
	case domain.EventHintJSXProp:
		heuristic = "jsx_prop"
	case domain.EventHintEmitterOn:
		heuristic = "emitter_on"
		framework = "Node"
	case domain.EventHintSocketOn:
		heuristic = "socket_on"
		framework = "Socket.IO"
	case domain.EventHintSignal:
		heuristic = "signal"
	default:
		return domain.EventHandler{}, false
	}

	return domain.EventHandler{
		Framework: framework,
		File:      path,
		Line:      line,
		Handler:   name,
		Event:     hint.Event,
		Metadata:  map[string]string{"heuristic": heuristic},
	}, true
}

// attributeFramework picks the framework label for naming-convention and
// DOM-level matches in this file.
func attributeFramework(fact *domain.FileFact) string {
	switch {
	case fact.HasImport("react"):
		return "React"
	case fact.HasImport("vue"):
		return "Vue"
	default:
		return "DOM"
	}
}

func functionName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return strings.TrimSpace(signature[:i])
	}
	return signature
}
