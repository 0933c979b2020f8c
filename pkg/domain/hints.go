package domain

// Hints are typed signals attached to a FunctionFact by the upstream parsers.
// Each category is a small tagged union: a Kind discriminant plus the fields
// that kind populates. Detectors switch exhaustively on Kind instead of
// sniffing substrings out of free-form strings.

// APIHintKind discriminates APIHint values.
type APIHintKind string

// API hint kinds.
const (
	APIHintExpressRoute APIHintKind = "express_route"
	APIHintNestRoute    APIHintKind = "nest_route"
	APIHintDjangoView   APIHintKind = "django_view"
	APIHintFlaskRoute   APIHintKind = "flask_route"
	APIHintFastAPIRoute APIHintKind = "fastapi_route"
	APIHintFetchCall    APIHintKind = "fetch_call"
)

// APIHint is an upstream signal that a function defines or calls an HTTP
// endpoint.
type APIHint struct {
	Kind APIHintKind `json:"kind"`
	// Method is the HTTP method, upper-case, when known.
	Method string `json:"method,omitempty"`
	// Route is the raw route expression when known.
	Route string `json:"route,omitempty"`
}

// StateHintKind discriminates StateHint values.
type StateHintKind string

// State hint kinds.
const (
	StateHintUseState      StateHintKind = "use_state"
	StateHintSetState      StateHintKind = "set_state"
	StateHintReduxDispatch StateHintKind = "redux_dispatch"
	StateHintReduxSlice    StateHintKind = "redux_slice"
	StateHintVuexCommit    StateHintKind = "vuex_commit"
	StateHintRefMutation   StateHintKind = "ref_mutation"
	StateHintModelSave     StateHintKind = "model_save"
)

// StateHint is an upstream signal that a function mutates application state.
type StateHint struct {
	Kind StateHintKind `json:"kind"`
	// Target is the mutated variable, setter, or action name when known.
	Target string `json:"target,omitempty"`
}

// EventHintKind discriminates EventHint values.
type EventHintKind string

// Event hint kinds.
const (
	EventHintDOMListener EventHintKind = "dom_listener"
	EventHintJSXProp     EventHintKind = "jsx_prop"
	EventHintEmitterOn   EventHintKind = "emitter_on"
	EventHintSocketOn    EventHintKind = "socket_on"
	EventHintSignal      EventHintKind = "signal"
)

// EventHint is an upstream signal that a function registers or implements an
// event handler.
type EventHint struct {
	Kind EventHintKind `json:"kind"`
	// Event is the event name (e.g., "click", "connection") when known.
	Event string `json:"event,omitempty"`
}
