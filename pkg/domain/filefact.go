package domain

// Decorator is a decorator or annotation attached to a function, method, or
// class, with its raw argument list preserved as source text.
type Decorator struct {
	// Name is the decorator name without the leading @ (e.g., "Get", "api_view").
	Name string `json:"name"`
	// Args contains the raw argument expressions, one per argument.
	Args []string `json:"args,omitempty"`
}

// FunctionFact describes a single function or method.
type FunctionFact struct {
	// Docstring is the leading documentation string, if any.
	Docstring string `json:"docstring,omitempty"`
	// Parameters contains the parameter names in declaration order.
	Parameters []string `json:"parameters,omitempty"`
	// IsAsync is true for async functions and coroutines.
	IsAsync bool `json:"is_async,omitempty"`
	// LineNumber is the 1-based line of the definition.
	LineNumber int `json:"line_number"`
	// Decorators are the decorators applied to this function.
	Decorators []Decorator `json:"decorators,omitempty"`
	// IsComponent is true for functions that look like UI components (JS/TS only).
	IsComponent bool `json:"is_component,omitempty"`
	// IsHook is true for functions following the React hook convention (JS/TS only).
	IsHook bool `json:"is_hook,omitempty"`
	// StateChanges are upstream-extracted state mutation hints.
	StateChanges []StateHint `json:"state_changes,omitempty"`
	// EventHandlers are upstream-extracted event handler hints.
	EventHandlers []EventHint `json:"event_handlers,omitempty"`
	// APIEndpoints are upstream-extracted API endpoint hints.
	APIEndpoints []APIHint `json:"api_endpoints,omitempty"`
}

// ClassFact describes a single class declaration.
type ClassFact struct {
	// Docstring is the leading documentation string, if any.
	Docstring string `json:"docstring,omitempty"`
	// BaseClasses contains the declared base class names.
	BaseClasses []string `json:"base_classes,omitempty"`
	// Methods maps method names to their facts.
	Methods map[string]FunctionFact `json:"methods,omitempty"`
	// Decorators are the decorators applied to the class itself.
	Decorators []Decorator `json:"decorators,omitempty"`
	// IsComponent is true for class components (JS/TS only).
	IsComponent bool `json:"is_component,omitempty"`
	// LineNumber is the 1-based line of the declaration.
	LineNumber int `json:"line_number"`
}

// FileFact is the normalized per-file analysis record produced by the
// language-specific parsers. It is read-only once produced; downstream
// enrichment works on copies and never mutates a FileFact in place.
type FileFact struct {
	// Path is the repo-relative, forward-slash file path.
	Path string `json:"path"`
	// Language is the detected programming language.
	Language Language `json:"language"`
	// Lines is the number of source lines in the file.
	Lines int `json:"lines"`
	// Imports maps an imported module specifier to the names imported from it.
	Imports map[string][]string `json:"imports,omitempty"`
	// Functions maps function signatures to their facts.
	Functions map[string]FunctionFact `json:"functions,omitempty"`
	// Classes maps class names to their facts.
	Classes map[string]ClassFact `json:"classes,omitempty"`
	// Error records a parse failure. A file with Error set contributes
	// nothing to detection or the dependency graph.
	Error string `json:"error,omitempty"`
}

// HasImport reports whether any import specifier contains the given module
// name as a substring (e.g., "express" matches both "express" and
// "express-session").
func (f *FileFact) HasImport(module string) bool {
	for mod := range f.Imports {
		if containsModule(mod, module) {
			return true
		}
	}
	return false
}

// HasExactImport reports whether the given module specifier was imported.
func (f *FileFact) HasExactImport(module string) bool {
	_, ok := f.Imports[module]
	return ok
}

// Clone returns a deep copy of the fact. Enrichment during aggregation
// operates on clones so that the input map stays untouched.
func (f FileFact) Clone() FileFact {
	out := f
	if f.Imports != nil {
		out.Imports = make(map[string][]string, len(f.Imports))
		for mod, names := range f.Imports {
			out.Imports[mod] = append([]string(nil), names...)
		}
	}
	if f.Functions != nil {
		out.Functions = make(map[string]FunctionFact, len(f.Functions))
		for sig, fn := range f.Functions {
			out.Functions[sig] = fn.clone()
		}
	}
	if f.Classes != nil {
		out.Classes = make(map[string]ClassFact, len(f.Classes))
		for name, cls := range f.Classes {
			out.Classes[name] = cls.clone()
		}
	}
	return out
}

func (fn FunctionFact) clone() FunctionFact {
	out := fn
	out.Parameters = append([]string(nil), fn.Parameters...)
	out.Decorators = cloneDecorators(fn.Decorators)
	out.StateChanges = append([]StateHint(nil), fn.StateChanges...)
	out.EventHandlers = append([]EventHint(nil), fn.EventHandlers...)
	out.APIEndpoints = append([]APIHint(nil), fn.APIEndpoints...)
	return out
}

func (c ClassFact) clone() ClassFact {
	out := c
	out.BaseClasses = append([]string(nil), c.BaseClasses...)
	out.Decorators = cloneDecorators(c.Decorators)
	if c.Methods != nil {
		out.Methods = make(map[string]FunctionFact, len(c.Methods))
		for name, m := range c.Methods {
			out.Methods[name] = m.clone()
		}
	}
	return out
}

func cloneDecorators(in []Decorator) []Decorator {
	if in == nil {
		return nil
	}
	out := make([]Decorator, len(in))
	for i, d := range in {
		out[i] = Decorator{Name: d.Name, Args: append([]string(nil), d.Args...)}
	}
	return out
}

func containsModule(specifier, module string) bool {
	if specifier == module {
		return true
	}
	// Scoped and nested specifiers: "@nestjs/common" matches "@nestjs",
	// "express/lib/router" matches "express".
	n := len(module)
	for i := 0; i+n <= len(specifier); i++ {
		if specifier[i:i+n] == module {
			return true
		}
	}
	return false
}
