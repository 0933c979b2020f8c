package api

import (
	"regexp"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

const (
	frameworkFlask   = "Flask"
	frameworkFastAPI = "FastAPI"
)

var (
	flaskRouteDecorator  = regexp.MustCompile(`(^|\.)route$`)
	fastapiVerbDecorator = regexp.MustCompile(`\.(get|post|put|patch|delete)$`)
	flaskMethodsArgToken = regexp.MustCompile(`[A-Z]+`)
)

func detectFlask(filePath string, fact *domain.FileFact) []domain.APIEndpoint {
	if fact.Language != domain.LanguagePython || !fact.HasImport("flask") {
		return nil
	}

	var out []domain.APIEndpoint
	for sig, fn := range fact.Functions {
		for _, dec := range fn.Decorators {
			if !flaskRouteDecorator.MatchString(dec.Name) || len(dec.Args) == 0 {
				continue
			}
			route := cleanDecoratorArg(dec.Args[0])
			method := "GET"
			// methods=['POST'] style keyword argument, first method wins.
			for _, arg := range dec.Args[1:] {
				if tokens := flaskMethodsArgToken.FindAllString(arg, -1); len(tokens) > 0 {
					method = tokens[0]
					break
				}
			}
			if ep, ok := newEndpoint(frameworkFlask, filePath, fn.LineNumber, functionName(sig), method, route, "decorator"); ok {
				out = append(out, ep)
			}
		}
	}
	return out
}

func detectFastAPI(filePath string, fact *domain.FileFact) []domain.APIEndpoint {
	if fact.Language != domain.LanguagePython || !fact.HasImport("fastapi") {
		return nil
	}

	var out []domain.APIEndpoint
	for sig, fn := range fact.Functions {
		for _, dec := range fn.Decorators {
			m := fastapiVerbDecorator.FindStringSubmatch(dec.Name)
			if m == nil || len(dec.Args) == 0 {
				continue
			}
			route := cleanDecoratorArg(dec.Args[0])
			if ep, ok := newEndpoint(frameworkFastAPI, filePath, fn.LineNumber, functionName(sig), strings.ToUpper(m[1]), route, "decorator"); ok {
				out = append(out, ep)
			}
		}
	}
	return out
}
