// Package state detects application state mutation sites in a FileFact
// corpus: React hook state, Redux stores, Vuex commits, and Django model
// writes.
package state

import (
	"regexp"
	"sort"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

// Detector finds state mutation patterns. Pure and read-only over the fact
// map; safe to run concurrently with the other detectors.
type Detector struct{}

// NewDetector creates a state pattern detector.
func NewDetector() *Detector {
	return &Detector{}
}

var (
	setterNaming  = regexp.MustCompile(`^set[A-Z][A-Za-z0-9]*$`)
	reducerNaming = regexp.MustCompile(`(Reducer|Slice)$`)
)

// Detect returns all detected state patterns sorted by (file, line).
func (d *Detector) Detect(files map[string]domain.FileFact) []domain.StatePattern {
	var out []domain.StatePattern

	for path, fact := range files {
		if fact.Error != "" {
			continue
		}
		out = append(out, detectReact(path, &fact)...)
		out = append(out, detectRedux(path, &fact)...)
		out = append(out, detectVuex(path, &fact)...)
		out = append(out, detectDjangoModels(path, &fact)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Type < out[j].Type
	})

	return out
}

func newPattern(framework, file string, line int, function, typ, target, heuristic string) (domain.StatePattern, bool) {
	if typ == "" {
		return domain.StatePattern{}, false
	}
	return domain.StatePattern{
		Framework: framework,
		File:      file,
		Line:      line,
		Function:  function,
		Type:      typ,
		Target:    target,
		Metadata:  map[string]string{"heuristic": heuristic},
	}, true
}

func detectReact(path string, fact *domain.FileFact) []domain.StatePattern {
	if !fact.Language.IsJSLike() || !fact.HasImport("react") {
		return nil
	}

	var out []domain.StatePattern
	for sig, fn := range fact.Functions {
		name := functionName(sig)

		matched := false
		for _, hint := range fn.StateChanges {
			typ := ""
			switch hint.Kind {
			case domain.StateHintUseState:
				typ = "useState"
			case domain.StateHintSetState:
				typ = "setState"
			case domain.StateHintRefMutation:
				typ = "useRef"
			default:
				continue
			}
			if p, ok := newPattern("React", path, fn.LineNumber, name, typ, hint.Target, "hint"); ok {
				out = append(out, p)
				matched = true
			}
		}
		if matched {
			continue
		}

		// Naming fallback: setX functions inside component/hook code.
		if (fn.IsComponent || fn.IsHook) && setterNaming.MatchString(name) {
			if p, ok := newPattern("React", path, fn.LineNumber, name, "setState", name, "naming"); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func detectRedux(path string, fact *domain.FileFact) []domain.StatePattern {
	if !fact.Language.IsJSLike() {
		return nil
	}
	if !fact.HasImport("redux") && !fact.HasImport("@reduxjs/toolkit") {
		return nil
	}

	var out []domain.StatePattern
	for sig, fn := range fact.Functions {
		name := functionName(sig)

		matched := false
		for _, hint := range fn.StateChanges {
			typ := ""
			switch hint.Kind {
			case domain.StateHintReduxDispatch:
				typ = "dispatch"
			case domain.StateHintReduxSlice:
				typ = "createSlice"
			default:
				continue
			}
			if p, ok := newPattern("Redux", path, fn.LineNumber, name, typ, hint.Target, "hint"); ok {
				out = append(out, p)
				matched = true
			}
		}
		if matched {
			continue
		}

		if reducerNaming.MatchString(name) {
			if p, ok := newPattern("Redux", path, fn.LineNumber, name, "reducer", name, "naming"); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func detectVuex(path string, fact *domain.FileFact) []domain.StatePattern {
	if !fact.Language.IsJSLike() {
		return nil
	}
	if !fact.HasImport("vuex") && !fact.HasImport("pinia") {
		return nil
	}

	var out []domain.StatePattern
	for sig, fn := range fact.Functions {
		name := functionName(sig)
		for _, hint := range fn.StateChanges {
			if hint.Kind != domain.StateHintVuexCommit {
				continue
			}
			if p, ok := newPattern("Vuex", path, fn.LineNumber, name, "commit", hint.Target, "hint"); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func detectDjangoModels(path string, fact *domain.FileFact) []domain.StatePattern {
	if fact.Language != domain.LanguagePython || !fact.HasImport("django") {
		return nil
	}

	var out []domain.StatePattern
	for className, cls := range fact.Classes {
		if !extendsModel(cls.BaseClasses) {
			continue
		}
		for methodSig, method := range cls.Methods {
			name := functionName(methodSig)
			if name != "save" && name != "delete" {
				continue
			}
			if p, ok := newPattern("Django", path, method.LineNumber, className+"."+name, "model_"+name, className, "base_class"); ok {
				out = append(out, p)
			}
		}
	}

	for sig, fn := range fact.Functions {
		for _, hint := range fn.StateChanges {
			if hint.Kind != domain.StateHintModelSave {
				continue
			}
			if p, ok := newPattern("Django", path, fn.LineNumber, functionName(sig), "model_save", hint.Target, "hint"); ok {
				out = append(out, p)
			}
		}
	}

	return out
}

func extendsModel(bases []string) bool {
	for _, base := range bases {
		if base == "models.Model" || strings.HasSuffix(base, ".Model") || base == "Model" {
			return true
		}
	}
	return false
}

func functionName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return strings.TrimSpace(signature[:i])
	}
	return signature
}
