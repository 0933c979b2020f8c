// Package jsast extracts structural facts from JavaScript and TypeScript
// source via tree-sitter: imports, functions, classes, decorators, component
// and hook flags, and the typed hints the downstream detectors consume.
package jsast

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/repolens/core/pkg/domain"
	"github.com/repolens/core/pkg/parser/tspool"
)

var (
	capitalized = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	hookNaming  = regexp.MustCompile(`^use[A-Z]`)
)

// Extract parses content and fills the fact's imports, functions, and
// classes. The fact's Path, Language, and Lines must already be set.
func Extract(ctx context.Context, fact *domain.FileFact, content []byte) error {
	tree, err := tspool.Parse(ctx, fact.Language, content)
	if err != nil {
		return fmt.Errorf("jsast: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("jsast: empty parse tree")
	}

	fact.Imports = extractImports(root, content)
	fact.Functions = make(map[string]domain.FunctionFact)
	fact.Classes = make(map[string]domain.ClassFact)

	extractDeclarations(root, content, fact)
	attachRegistrationHints(root, content, fact)

	return nil
}

func extractDeclarations(root *sitter.Node, source []byte, fact *domain.FileFact) {
	lang := fact.Language
	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration":
			if name, fn, ok := extractFunction(n, source, lang); ok {
				fact.Functions[signature(name, fn.Parameters)] = fn
			}
			return false
		case "lexical_declaration", "variable_declaration":
			for _, decl := range FindChildrenByType(n, "variable_declarator") {
				if name, fn, ok := extractArrowFunction(decl, source, lang); ok {
					fact.Functions[signature(name, fn.Parameters)] = fn
				}
			}
			return true
		case "class_declaration":
			if name, cls, ok := extractClass(n, source, lang); ok {
				fact.Classes[name] = cls
			}
			return false
		}
		return true
	})
}

func extractFunction(node *sitter.Node, source []byte, lang domain.Language) (string, domain.FunctionFact, bool) {
	nameNode := node.ChildByFieldName("name")
	name := NodeText(nameNode, source)
	if name == "" {
		return "", domain.FunctionFact{}, false
	}

	params := extractParams(node.ChildByFieldName("parameters"), source)
	fn := domain.FunctionFact{
		Parameters: params,
		IsAsync:    FindChildByType(node, "async") != nil,
		LineNumber: Line(node),
		Decorators: extractDecorators(node, source),
	}

	body := node.ChildByFieldName("body")
	classify(&fn, name, body, source, lang)
	scanBodyHints(&fn, body, source)

	return name, fn, true
}

// extractArrowFunction handles `const Foo = () => ...` and
// `const foo = function () {...}` declarations.
func extractArrowFunction(decl *sitter.Node, source []byte, lang domain.Language) (string, domain.FunctionFact, bool) {
	value := decl.ChildByFieldName("value")
	if value == nil {
		return "", domain.FunctionFact{}, false
	}
	if value.Type() != "arrow_function" && value.Type() != "function_expression" && value.Type() != "function" {
		return "", domain.FunctionFact{}, false
	}

	name := NodeText(decl.ChildByFieldName("name"), source)
	if name == "" {
		return "", domain.FunctionFact{}, false
	}

	fn := domain.FunctionFact{
		Parameters: extractParams(value.ChildByFieldName("parameters"), source),
		IsAsync:    FindChildByType(value, "async") != nil,
		LineNumber: Line(decl),
	}

	body := value.ChildByFieldName("body")
	classify(&fn, name, body, source, lang)
	scanBodyHints(&fn, body, source)

	return name, fn, true
}

func extractClass(node *sitter.Node, source []byte, lang domain.Language) (string, domain.ClassFact, bool) {
	name := NodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		return "", domain.ClassFact{}, false
	}

	cls := domain.ClassFact{
		BaseClasses: extractBases(node, source),
		Methods:     make(map[string]domain.FunctionFact),
		Decorators:  extractDecorators(node, source),
		LineNumber:  Line(node),
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		for _, method := range FindChildrenByType(body, "method_definition") {
			methodName := NodeText(method.ChildByFieldName("name"), source)
			if methodName == "" {
				continue
			}
			fn := domain.FunctionFact{
				Parameters: extractParams(method.ChildByFieldName("parameters"), source),
				IsAsync:    FindChildByType(method, "async") != nil,
				LineNumber: Line(method),
				Decorators: extractDecorators(method, source),
			}
			scanBodyHints(&fn, method.ChildByFieldName("body"), source)
			cls.Methods[signature(methodName, fn.Parameters)] = fn
		}
	}

	cls.IsComponent = isComponentClass(name, cls.BaseClasses, body, source, lang)

	return name, cls, true
}

// extractBases pulls the extends expressions out of a class heritage clause.
// Both the JS grammar (class_heritage > expression) and the TS grammar
// (class_heritage > extends_clause) are handled.
func extractBases(node *sitter.Node, source []byte) []string {
	heritage := FindChildByType(node, "class_heritage")
	if heritage == nil {
		return nil
	}

	var bases []string
	walk(heritage, func(n *sitter.Node) bool {
		switch n.Type() {
		case "identifier", "member_expression", "nested_identifier":
			bases = append(bases, NodeText(n, source))
			return false
		}
		return true
	})
	return bases
}

func extractParams(params *sitter.Node, source []byte) []string {
	if params == nil {
		return nil
	}

	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		text := NodeText(params.NamedChild(i), source)
		if text == "" {
			continue
		}
		// TS type annotations and defaults are noise at this layer.
		if idx := strings.IndexAny(text, ":="); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// extractDecorators reads decorator nodes attached to a class, method, or
// function. The argument list keeps raw source text per argument; only
// downstream heuristics interpret it.
func extractDecorators(node *sitter.Node, source []byte) []domain.Decorator {
	var out []domain.Decorator
	for _, dec := range FindChildrenByType(node, "decorator") {
		if d, ok := parseDecorator(dec, source); ok {
			out = append(out, d)
		}
	}

	// TS wraps decorated declarations: decorators can precede the
	// declaration as siblings under an export statement or program node.
	if prev := node.PrevNamedSibling(); prev != nil && prev.Type() == "decorator" {
		for sib := prev; sib != nil && sib.Type() == "decorator"; sib = sib.PrevNamedSibling() {
			if d, ok := parseDecorator(sib, source); ok {
				out = append([]domain.Decorator{d}, out...)
			}
		}
	}

	return out
}

func parseDecorator(dec *sitter.Node, source []byte) (domain.Decorator, bool) {
	for i := 0; i < int(dec.NamedChildCount()); i++ {
		child := dec.NamedChild(i)
		switch child.Type() {
		case "identifier", "member_expression":
			return domain.Decorator{Name: NodeText(child, source)}, true
		case "call_expression":
			name := NodeText(child.ChildByFieldName("function"), source)
			if name == "" {
				return domain.Decorator{}, false
			}
			return domain.Decorator{
				Name: name,
				Args: argumentTexts(child.ChildByFieldName("arguments"), source),
			}, true
		}
	}
	return domain.Decorator{}, false
}

func argumentTexts(args *sitter.Node, source []byte) []string {
	if args == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if text := NodeText(args.NamedChild(i), source); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// jsxQuery matches any JSX node. Compiled once per language via the tspool
// query cache.
const jsxQuery = `[
  (jsx_element)
  (jsx_self_closing_element)
  (jsx_fragment)
] @jsx`

// containsJSX reports whether the subtree renders JSX. The cached query only
// compiles against grammars that define JSX node types; anything else falls
// back to a plain walk.
func containsJSX(body *sitter.Node, source []byte, lang domain.Language) bool {
	if results, err := tspool.QueryWithCache(body, source, lang, jsxQuery); err == nil {
		return len(results) > 0
	}
	return hasDescendantOfType(body,
		"jsx_element", "jsx_self_closing_element", "jsx_fragment")
}

// classify sets the component and hook flags from the function name and
// body shape.
func classify(fn *domain.FunctionFact, name string, body *sitter.Node, source []byte, lang domain.Language) {
	fn.IsHook = hookNaming.MatchString(name)
	if capitalized.MatchString(name) && body != nil {
		fn.IsComponent = containsJSX(body, source, lang)
	}
}

func isComponentClass(name string, bases []string, body *sitter.Node, source []byte, lang domain.Language) bool {
	for _, base := range bases {
		if base == "Component" || base == "PureComponent" ||
			strings.HasSuffix(base, ".Component") || strings.HasSuffix(base, ".PureComponent") {
			return true
		}
	}
	if capitalized.MatchString(name) && body != nil {
		return containsJSX(body, source, lang)
	}
	return false
}

func signature(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}
