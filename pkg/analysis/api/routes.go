package api

import (
	"regexp"
	"strings"

	"github.com/repolens/core/pkg/domain"
)

var (
	routeParamPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)
	// First-argument extraction for route decorators. Deliberately crude:
	// only the first argument is considered and template-literal
	// interpolation is not resolved.
	decoratorArgQuotes = regexp.MustCompile("^[`'\"]?([^`'\"]*)[`'\"]?$")
	camelBoundary      = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ExtractRouteParams pulls ":name" tokens and "*" wildcards out of a route
// expression.
func ExtractRouteParams(route string) []domain.RouteParameter {
	var params []domain.RouteParameter
	for _, m := range routeParamPattern.FindAllStringSubmatch(route, -1) {
		params = append(params, domain.RouteParameter{
			Name:     m[1],
			Type:     "string",
			Required: true,
		})
	}
	if strings.Contains(route, "*") {
		params = append(params, domain.RouteParameter{
			Name:     "wildcard",
			Type:     "string",
			Required: false,
		})
	}
	return params
}

// cleanDecoratorArg strips surrounding quotes from a decorator's first
// argument.
func cleanDecoratorArg(arg string) string {
	m := decoratorArgQuotes.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil {
		return strings.TrimSpace(arg)
	}
	return m[1]
}

// joinRoute composes a controller prefix with a method-level route segment.
func joinRoute(prefix, segment string) string {
	prefix = strings.Trim(prefix, "/")
	segment = strings.Trim(segment, "/")
	switch {
	case prefix == "" && segment == "":
		return "/"
	case prefix == "":
		return "/" + segment
	case segment == "":
		return "/" + prefix
	default:
		return "/" + prefix + "/" + segment
	}
}

// kebab converts a camelCase or snake_case identifier to kebab-case.
func kebab(name string) string {
	name = camelBoundary.ReplaceAllString(name, "${1}-${2}")
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ToLower(name)
}

// djangoSlug derives a Django-style route from a view function name:
// trailing "view"/"api" suffixes are stripped, the rest is slugged, and the
// result is wrapped in slashes.
func djangoSlug(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range []string{"_view", "view", "_api", "api"} {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			name = name[:len(name)-len(suffix)]
			lower = strings.ToLower(name)
		}
	}
	name = strings.Trim(name, "_")
	if name == "" {
		return "/"
	}
	return "/" + kebab(name) + "/"
}
