package api

import (
	"strings"

	"github.com/repolens/core/pkg/domain"
)

const frameworkNest = "NestJS"

var nestMethods = map[string]string{
	"Get":    "GET",
	"Post":   "POST",
	"Put":    "PUT",
	"Patch":  "PATCH",
	"Delete": "DELETE",
}

func detectNest(path string, fact *domain.FileFact) []domain.APIEndpoint {
	if !fact.Language.IsJSLike() || !fact.HasImport("@nestjs") {
		return nil
	}

	var out []domain.APIEndpoint
	for className, cls := range fact.Classes {
		prefix, isController := controllerPrefix(cls.Decorators)
		if !isController {
			continue
		}

		for methodSig, method := range cls.Methods {
			for _, dec := range method.Decorators {
				httpMethod, ok := nestMethods[dec.Name]
				if !ok {
					continue
				}
				segment := ""
				if len(dec.Args) > 0 {
					segment = cleanDecoratorArg(dec.Args[0])
				}
				route := joinRoute(prefix, segment)
				ep, ok := newEndpoint(frameworkNest, path, method.LineNumber, functionName(methodSig), httpMethod, route, "decorator")
				if !ok {
					continue
				}
				ep.Controller = className
				out = append(out, ep)
			}
		}
	}

	return out
}

// controllerPrefix returns the @Controller route prefix and whether the class
// is a controller at all. A bare @Controller() yields an empty prefix.
func controllerPrefix(decorators []domain.Decorator) (string, bool) {
	for _, dec := range decorators {
		if dec.Name != "Controller" {
			continue
		}
		if len(dec.Args) == 0 {
			return "", true
		}
		return strings.Trim(cleanDecoratorArg(dec.Args[0]), "/"), true
	}
	return "", false
}
