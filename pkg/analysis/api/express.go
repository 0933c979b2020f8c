package api

import (
	"regexp"

	"github.com/repolens/core/pkg/domain"
)

const frameworkExpress = "Express"

var expressNaming = regexp.MustCompile(`^(get|post|put|delete|patch)([A-Z][A-Za-z0-9]*)$`)

func detectExpress(path string, fact *domain.FileFact) []domain.APIEndpoint {
	if !fact.Language.IsJSLike() || !fact.HasExactImport("express") {
		return nil
	}

	var out []domain.APIEndpoint
	for sig, fn := range fact.Functions {
		name := functionName(sig)

		matched := false
		for _, hint := range fn.APIEndpoints {
			if hint.Kind != domain.APIHintExpressRoute {
				continue
			}
			if ep, ok := newEndpoint(frameworkExpress, path, fn.LineNumber, name, hint.Method, hint.Route, "hint"); ok {
				out = append(out, ep)
				matched = true
			}
		}
		if matched {
			continue
		}

		// Naming convention fallback: getUsers -> GET /users.
		if m := expressNaming.FindStringSubmatch(name); m != nil {
			route := "/" + kebab(m[2])
			if ep, ok := newEndpoint(frameworkExpress, path, fn.LineNumber, name, m[1], route, "naming"); ok {
				out = append(out, ep)
			}
		}
	}

	return out
}
