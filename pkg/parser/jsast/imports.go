package jsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractImports collects ES module imports and CommonJS require calls into
// a specifier -> imported-names map. Dynamic or computed specifiers are not
// resolved; only string literals are recorded.
func extractImports(root *sitter.Node, source []byte) map[string][]string {
	imports := make(map[string][]string)

	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			collectESImport(n, source, imports)
			return false
		case "variable_declarator":
			collectRequire(n, source, imports)
			return true
		case "call_expression":
			collectSideEffectRequire(n, source, imports)
			return true
		}
		return true
	})

	if len(imports) == 0 {
		return nil
	}
	return imports
}

func collectESImport(node *sitter.Node, source []byte, imports map[string][]string) {
	specifier := stringLiteral(node.ChildByFieldName("source"), source)
	if specifier == "" {
		return
	}

	var names []string
	if clause := FindChildByType(node, "import_clause"); clause != nil {
		walk(clause, func(n *sitter.Node) bool {
			switch n.Type() {
			case "identifier":
				names = append(names, NodeText(n, source))
			case "import_specifier":
				if name := NodeText(n.ChildByFieldName("name"), source); name != "" {
					names = append(names, name)
					return false
				}
			}
			return true
		})
	}
	if len(names) == 0 {
		// Side-effect import: record the module with a wildcard name so
		// the dependency edge is kept.
		names = []string{"*"}
	}

	imports[specifier] = append(imports[specifier], names...)
}

// collectRequire handles `const x = require('y')` and destructured forms.
func collectRequire(decl *sitter.Node, source []byte, imports map[string][]string) {
	value := decl.ChildByFieldName("value")
	specifier := requireSpecifier(value, source)
	if specifier == "" {
		return
	}

	nameNode := decl.ChildByFieldName("name")
	var names []string
	switch {
	case nameNode == nil:
		names = []string{"*"}
	case nameNode.Type() == "object_pattern":
		walk(nameNode, func(n *sitter.Node) bool {
			if n.Type() == "shorthand_property_identifier_pattern" || n.Type() == "identifier" {
				names = append(names, NodeText(n, source))
			}
			return true
		})
	default:
		names = []string{NodeText(nameNode, source)}
	}

	if len(names) == 0 {
		names = []string{"*"}
	}
	imports[specifier] = append(imports[specifier], names...)
}

// collectSideEffectRequire handles bare `require('y')` statements.
func collectSideEffectRequire(call *sitter.Node, source []byte, imports map[string][]string) {
	specifier := requireSpecifier(call, source)
	if specifier == "" {
		return
	}
	if _, known := imports[specifier]; known {
		return
	}
	if parent := call.Parent(); parent != nil && parent.Type() == "expression_statement" {
		imports[specifier] = []string{"*"}
	}
}

func requireSpecifier(call *sitter.Node, source []byte) string {
	if call == nil || call.Type() != "call_expression" {
		return ""
	}
	if NodeText(call.ChildByFieldName("function"), source) != "require" {
		return ""
	}
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	return stringLiteral(args.NamedChild(0), source)
}

// stringLiteral returns the unquoted text of a string node, or "" for
// anything that is not a plain literal (template interpolation included).
func stringLiteral(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "string", "template_string":
		text := NodeText(node, source)
		if strings.Contains(text, "${") {
			return ""
		}
		return strings.Trim(text, "'\"`")
	default:
		return ""
	}
}
