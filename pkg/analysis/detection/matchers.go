// Package detection implements confidence-scored framework detection over a
// FileFact corpus. Weighted pattern matches accumulate per framework, the
// raw score is normalized against an achievable ceiling, and frameworks
// clearing their threshold are emitted sorted by confidence.
package detection

import (
	"strings"

	"github.com/repolens/core/pkg/analysis/catalog"
	"github.com/repolens/core/pkg/domain"
)

// Match runs one pattern against one file and reports whether it fired.
// Patterns are pure predicates: no state, no mutation of the fact.
func Match(p *catalog.Pattern, path string, fact *domain.FileFact) bool {
	switch p.Kind {
	case catalog.MatchFileName:
		return p.Expr.MatchString(path)
	case catalog.MatchImport:
		return matchImport(p, fact)
	case catalog.MatchFunctionCall:
		return matchFunctionCall(p, fact)
	case catalog.MatchClassName:
		return matchClassName(p, fact)
	case catalog.MatchDecorator:
		return matchDecorator(p, fact)
	case catalog.MatchContent:
		// Raw source is not retained at this layer; content patterns fall
		// back to language compatibility alone.
		return p.AppliesTo(fact.Language)
	default:
		return false
	}
}

func matchImport(p *catalog.Pattern, fact *domain.FileFact) bool {
	for module := range fact.Imports {
		if p.Expr.MatchString(module) {
			return true
		}
	}
	return false
}

func matchFunctionCall(p *catalog.Pattern, fact *domain.FileFact) bool {
	switch {
	case p.Context.Hook:
		return matchHook(p, fact)
	case p.Context.JSX:
		return matchJSXComponent(p, fact)
	}

	for sig := range fact.Functions {
		if p.Expr.MatchString(sig) {
			return true
		}
	}
	for _, cls := range fact.Classes {
		for name := range cls.Methods {
			if p.Expr.MatchString(name) {
				return true
			}
		}
	}
	return false
}

// matchHook fires when the framework is imported and the file either carries
// an upstream hook flag or defines a function following the hook naming
// convention.
func matchHook(p *catalog.Pattern, fact *domain.FileFact) bool {
	if p.Context.RequiresImport != "" && !fact.HasImport(p.Context.RequiresImport) {
		return false
	}
	for sig, fn := range fact.Functions {
		if fn.IsHook {
			return true
		}
		if p.Expr.MatchString(functionName(sig)) {
			return true
		}
	}
	return false
}

// matchJSXComponent fires on JS/TS files whose upstream parse flagged a
// function as a component and whose name satisfies the pattern.
func matchJSXComponent(p *catalog.Pattern, fact *domain.FileFact) bool {
	if !fact.Language.IsJSLike() {
		return false
	}
	if p.Context.RequiresImport != "" && !fact.HasImport(p.Context.RequiresImport) {
		return false
	}
	for sig, fn := range fact.Functions {
		if fn.IsComponent && p.Expr.MatchString(functionName(sig)) {
			return true
		}
	}
	for name, cls := range fact.Classes {
		if cls.IsComponent && p.Expr.MatchString(name) {
			return true
		}
	}
	return false
}

func matchClassName(p *catalog.Pattern, fact *domain.FileFact) bool {
	for name, cls := range fact.Classes {
		if p.Expr.MatchString(name) {
			return true
		}
		if p.Context.Inheritance {
			for _, base := range cls.BaseClasses {
				if p.Expr.MatchString(base) {
					return true
				}
			}
		}
	}
	return false
}

func matchDecorator(p *catalog.Pattern, fact *domain.FileFact) bool {
	for _, fn := range fact.Functions {
		if decoratorMatches(p, fn.Decorators) {
			return true
		}
	}
	for _, cls := range fact.Classes {
		if decoratorMatches(p, cls.Decorators) {
			return true
		}
		for _, m := range cls.Methods {
			if decoratorMatches(p, m.Decorators) {
				return true
			}
		}
	}
	return false
}

func decoratorMatches(p *catalog.Pattern, decorators []domain.Decorator) bool {
	for _, d := range decorators {
		if p.Expr.MatchString(d.Name) {
			return true
		}
	}
	return false
}

// functionName strips the parameter list from a signature map key.
func functionName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return strings.TrimSpace(signature[:i])
	}
	return signature
}
