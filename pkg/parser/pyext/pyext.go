// Package pyext extracts structural facts from Python source using
// line-based regular expressions: imports, function and class definitions,
// decorators with raw arguments, and docstrings. It trades precision for
// robustness; a file that defeats the regexes simply yields fewer facts,
// never an error.
package pyext

import (
	"regexp"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

var (
	importLine    = regexp.MustCompile(`^import\s+(.+?)\s*$`)
	fromLine      = regexp.MustCompile(`^from\s+(\.*[\w.]*)\s+import\s+(.+?)\s*$`)
	classLine     = regexp.MustCompile(`^class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	defLine       = regexp.MustCompile(`^(\s*)(async\s+)?def\s+(\w+)\s*\(([^)]*)\)?`)
	decoratorLine = regexp.MustCompile(`^(\s*)@([\w.]+)\s*(?:\((.*)\))?\s*$`)
	docstringHead = regexp.MustCompile(`^\s*(?:[rbu]{0,2})("""|''')(.*)$`)
)

// Extract fills the fact's imports, functions, and classes from Python
// source. It never fails; unparseable constructs are skipped.
func Extract(fact *domain.FileFact, content []byte) {
	lines := strings.Split(string(content), "\n")

	imports := make(map[string][]string)
	functions := make(map[string]domain.FunctionFact)
	classes := make(map[string]domain.ClassFact)

	var pendingDecorators []domain.Decorator
	var currentClass string

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")

		if m := importLine.FindStringSubmatch(line); m != nil {
			collectImport(m[1], imports)
			pendingDecorators = nil
			continue
		}
		if m := fromLine.FindStringSubmatch(line); m != nil {
			collectFromImport(m[1], m[2], imports)
			pendingDecorators = nil
			continue
		}

		if m := decoratorLine.FindStringSubmatch(line); m != nil {
			dec := domain.Decorator{Name: m[2]}
			if m[3] != "" {
				dec.Args = splitArgs(m[3])
			}
			pendingDecorators = append(pendingDecorators, dec)
			continue
		}

		if m := classLine.FindStringSubmatch(line); m != nil {
			classes[m[1]] = domain.ClassFact{
				Docstring:   leadingDocstring(lines, i+1),
				BaseClasses: splitNames(m[2]),
				Methods:     make(map[string]domain.FunctionFact),
				Decorators:  pendingDecorators,
				LineNumber:  i + 1,
			}
			currentClass = m[1]
			pendingDecorators = nil
			continue
		}

		if m := defLine.FindStringSubmatch(line); m != nil {
			indent := m[1]
			params := splitNames(m[4])
			fn := domain.FunctionFact{
				Docstring:  leadingDocstring(lines, i+1),
				Parameters: params,
				IsAsync:    m[2] != "",
				LineNumber: i + 1,
				Decorators: pendingDecorators,
			}
			pendingDecorators = nil

			sig := m[3] + "(" + strings.Join(params, ", ") + ")"
			if indent == "" {
				functions[sig] = fn
				currentClass = ""
			} else if currentClass != "" {
				classes[currentClass].Methods[sig] = fn
			}
			continue
		}

		// Any other non-blank top-level line ends the current class body
		// and orphans buffered decorators.
		if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			currentClass = ""
			pendingDecorators = nil
		}
	}

	if len(imports) > 0 {
		fact.Imports = imports
	}
	fact.Functions = functions
	fact.Classes = classes
}

// collectImport handles `import a, b.c as d`.
func collectImport(clause string, imports map[string][]string) {
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		module := part
		if i := strings.Index(part, " as "); i >= 0 {
			module = strings.TrimSpace(part[:i])
		}
		if module == "" {
			continue
		}
		imports[module] = appendUnique(imports[module], module)
	}
}

// collectFromImport handles `from x import a, b as c` and relative forms.
// Relative modules are normalized to path-style specifiers (".models" ->
// "./models") so the dependency resolver can join them against the
// importing file's directory.
func collectFromImport(module, clause string, imports map[string][]string) {
	specifier := normalizeModule(module)
	if specifier == "" {
		return
	}

	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(strings.Trim(part, "()"))
		if part == "" || part == "\\" {
			continue
		}
		name := part
		if i := strings.Index(part, " as "); i >= 0 {
			name = strings.TrimSpace(part[:i])
		}
		if name == "" {
			continue
		}
		imports[specifier] = appendUnique(imports[specifier], name)
	}
}

// normalizeModule converts dotted module paths to the specifier form the
// resolver expects: leading dots become directory steps, remaining dots
// become slashes.
func normalizeModule(module string) string {
	if module == "" {
		return ""
	}

	dots := 0
	for dots < len(module) && module[dots] == '.' {
		dots++
	}
	rest := strings.ReplaceAll(module[dots:], ".", "/")

	switch dots {
	case 0:
		return rest
	case 1:
		if rest == "" {
			return "."
		}
		return "./" + rest
	default:
		prefix := strings.Repeat("../", dots-1)
		if rest == "" {
			return strings.TrimSuffix(prefix, "/")
		}
		return prefix + rest
	}
}

// splitArgs splits a decorator argument list on top-level commas, keeping
// bracketed groups like ['GET','POST'] intact.
func splitArgs(argList string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(argList); i++ {
		switch argList[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(argList[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(argList[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func splitNames(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		// Drop defaults and annotations from parameters.
		if i := strings.IndexAny(name, ":="); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// leadingDocstring returns the first line of a docstring starting at or
// after the given line index.
func leadingDocstring(lines []string, from int) string {
	for i := from; i < len(lines) && i < from+2; i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := docstringHead.FindStringSubmatch(line)
		if m == nil {
			return ""
		}
		text := m[2]
		if end := strings.Index(text, m[1]); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}
	return ""
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}
