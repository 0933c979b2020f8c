package jsast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/repolens/core/pkg/domain"
)

var expressVerbs = map[string]string{
	"get":    "GET",
	"post":   "POST",
	"put":    "PUT",
	"patch":  "PATCH",
	"delete": "DELETE",
}

// scanBodyHints walks one function body and records the typed hints the
// downstream detectors consume.
func scanBodyHints(fn *domain.FunctionFact, body *sitter.Node, source []byte) {
	if body == nil {
		return
	}

	walk(body, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}

		callee := NodeText(n.ChildByFieldName("function"), source)
		args := n.ChildByFieldName("arguments")

		switch {
		case callee == "useState":
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{
				Kind:   domain.StateHintUseState,
				Target: useStateSetter(n, source),
			})
		case callee == "useRef":
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{Kind: domain.StateHintRefMutation})
		case callee == "this.setState":
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{Kind: domain.StateHintSetState})
		case callee == "dispatch" || strings.HasSuffix(callee, ".dispatch"):
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{
				Kind:   domain.StateHintReduxDispatch,
				Target: firstArgText(args, source),
			})
		case callee == "createSlice":
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{Kind: domain.StateHintReduxSlice})
		case callee == "commit" || strings.HasSuffix(callee, ".commit"):
			fn.StateChanges = appendStateHint(fn.StateChanges, domain.StateHint{
				Kind:   domain.StateHintVuexCommit,
				Target: stringArg(args, source),
			})
		case strings.HasSuffix(callee, "addEventListener"):
			if event := stringArg(args, source); event != "" {
				fn.EventHandlers = appendEventHint(fn.EventHandlers, domain.EventHint{
					Kind:  domain.EventHintDOMListener,
					Event: event,
				})
			}
		case strings.HasSuffix(callee, ".on") || strings.HasSuffix(callee, ".once"):
			if event := stringArg(args, source); event != "" {
				kind := domain.EventHintEmitterOn
				if strings.Contains(callee, "socket") || strings.Contains(callee, "io") {
					kind = domain.EventHintSocketOn
				}
				fn.EventHandlers = appendEventHint(fn.EventHandlers, domain.EventHint{
					Kind:  kind,
					Event: event,
				})
			}
		}

		return true
	})
}

// useStateSetter digs the setter name out of `const [x, setX] = useState()`.
func useStateSetter(call *sitter.Node, source []byte) string {
	parent := call.Parent()
	if parent == nil || parent.Type() != "variable_declarator" {
		return ""
	}
	pattern := parent.ChildByFieldName("name")
	if pattern == nil || pattern.Type() != "array_pattern" {
		return ""
	}
	if pattern.NamedChildCount() < 2 {
		return ""
	}
	return NodeText(pattern.NamedChild(1), source)
}

// attachRegistrationHints scans top-level route registrations like
// `app.get('/users', getUsers)` and attaches an API hint to the referenced
// handler function, matching what the per-function scan cannot see.
func attachRegistrationHints(root *sitter.Node, source []byte, fact *domain.FileFact) {
	walk(root, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}

		fnNode := n.ChildByFieldName("function")
		if fnNode == nil || fnNode.Type() != "member_expression" {
			return true
		}

		verb := NodeText(fnNode.ChildByFieldName("property"), source)
		method, ok := expressVerbs[verb]
		if !ok {
			return true
		}

		args := n.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() < 2 {
			return true
		}
		route := stringLiteral(args.NamedChild(0), source)
		if route == "" {
			return true
		}

		hint := domain.APIHint{
			Kind:   domain.APIHintExpressRoute,
			Method: method,
			Route:  route,
		}

		// Attach to the named handler when the argument references one.
		last := args.NamedChild(int(args.NamedChildCount()) - 1)
		if last.Type() == "identifier" {
			attachAPIHint(fact, NodeText(last, source), hint)
		}

		return true
	})
}

func attachAPIHint(fact *domain.FileFact, handlerName string, hint domain.APIHint) {
	for sig, fn := range fact.Functions {
		if !strings.HasPrefix(sig, handlerName+"(") {
			continue
		}
		for _, existing := range fn.APIEndpoints {
			if existing == hint {
				return
			}
		}
		fn.APIEndpoints = append(fn.APIEndpoints, hint)
		fact.Functions[sig] = fn
		return
	}
}

func appendStateHint(hints []domain.StateHint, h domain.StateHint) []domain.StateHint {
	for _, existing := range hints {
		if existing == h {
			return hints
		}
	}
	return append(hints, h)
}

func appendEventHint(hints []domain.EventHint, h domain.EventHint) []domain.EventHint {
	for _, existing := range hints {
		if existing == h {
			return hints
		}
	}
	return append(hints, h)
}

func firstArgText(args *sitter.Node, source []byte) string {
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	text := NodeText(args.NamedChild(0), source)
	if len(text) > 64 {
		return ""
	}
	return text
}

func stringArg(args *sitter.Node, source []byte) string {
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	return stringLiteral(args.NamedChild(0), source)
}
