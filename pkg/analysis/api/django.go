package api

import (
	"path"
	"regexp"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

const frameworkDjango = "Django"

var (
	httpMethodToken = regexp.MustCompile(`[A-Z]+`)
	djangoViewBase  = regexp.MustCompile(`(APIView|ViewSet|View)$`)
	djangoHTTPVerbs = map[string]string{
		"get":    "GET",
		"post":   "POST",
		"put":    "PUT",
		"patch":  "PATCH",
		"delete": "DELETE",
	}
)

func detectDjango(filePath string, fact *domain.FileFact) []domain.APIEndpoint {
	if fact.Language != domain.LanguagePython {
		return nil
	}
	if !fact.HasImport("django") && !fact.HasImport("rest_framework") {
		return nil
	}

	var out []domain.APIEndpoint
	out = append(out, djangoFunctionViews(filePath, fact)...)
	out = append(out, djangoClassViews(filePath, fact)...)
	return out
}

func djangoFunctionViews(filePath string, fact *domain.FileFact) []domain.APIEndpoint {
	base := path.Base(filePath)
	isViewFile := base == "views.py" || base == "urls.py"

	var out []domain.APIEndpoint
	for sig, fn := range fact.Functions {
		name := functionName(sig)

		if method, ok := apiViewMethod(fn.Decorators); ok {
			if ep, emit := newEndpoint(frameworkDjango, filePath, fn.LineNumber, name, method, djangoSlug(name), "decorator"); emit {
				out = append(out, ep)
			}
			continue
		}

		// File-path convention: request-taking functions in views.py are
		// plain views, assumed GET.
		if isViewFile && firstParam(&fn) == "request" {
			if ep, emit := newEndpoint(frameworkDjango, filePath, fn.LineNumber, name, "GET", djangoSlug(name), "file_path"); emit {
				out = append(out, ep)
			}
		}
	}
	return out
}

// apiViewMethod parses @api_view(['GET','POST']) and returns the first
// listed method.
func apiViewMethod(decorators []domain.Decorator) (string, bool) {
	for _, dec := range decorators {
		if dec.Name != "api_view" || len(dec.Args) == 0 {
			continue
		}
		methods := httpMethodToken.FindAllString(dec.Args[0], -1)
		if len(methods) == 0 {
			return "", false
		}
		return methods[0], true
	}
	return "", false
}

func djangoClassViews(filePath string, fact *domain.FileFact) []domain.APIEndpoint {
	var out []domain.APIEndpoint
	for className, cls := range fact.Classes {
		if !extendsDjangoView(cls.BaseClasses) {
			continue
		}

		route := "/" + kebab(djangoViewBase.ReplaceAllString(className, "")) + "/"
		for methodSig, method := range cls.Methods {
			name := functionName(methodSig)
			verb, ok := djangoHTTPVerbs[strings.ToLower(name)]
			if !ok {
				continue
			}
			ep, emit := newEndpoint(frameworkDjango, filePath, method.LineNumber, name, verb, route, "base_class")
			if !emit {
				continue
			}
			ep.Controller = className
			out = append(out, ep)
		}
	}
	return out
}

func extendsDjangoView(bases []string) bool {
	for _, base := range bases {
		if djangoViewBase.MatchString(base) {
			return true
		}
	}
	return false
}
