package http

import (
	"errors"

	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
)

// Definitions travel as generic objects and go through codec.FromMap, so numeric
// symbols such as `"alphabet": [0, 1]` are accepted.
type rawDefinition = map[string]any

// RunRequest is the body of POST /run.
// Input is tokenized against the alphabet; Symbols, when present, is used as is.
type RunRequest struct {
	Definition rawDefinition `json:"definition"`
	Input      string        `json:"input"`
	Symbols    []string      `json:"symbols,omitempty"`
}

// RunResponse is the body returned by POST /run.
type RunResponse struct {
	Accepted   bool         `json:"accepted"`
	Verdict    string       `json:"verdict"`
	FinalState string       `json:"final_state"`
	Stalled    bool         `json:"stalled"`
	Trace      domain.Trace `json:"trace"`
	Explain    string       `json:"explain"`
}

// EnumerateRequest is the body of POST /enumerate. Omitted limits take the server defaults.
type EnumerateRequest struct {
	Definition rawDefinition `json:"definition"`
	MaxResults *int          `json:"max_results,omitempty"`
	MaxLength  *int          `json:"max_length,omitempty"`
}

// EnumerateResponse is the body returned by POST /enumerate.
type EnumerateResponse struct {
	Strings    []string `json:"strings"`
	MaxResults int      `json:"max_results"`
	MaxLength  int      `json:"max_length"`
}

// ValidateResponse is the body returned by POST /validate.
type ValidateResponse struct {
	Valid bool      `json:"valid"`
	Error *APIError `json:"error,omitempty"`
}

// APIError describes a failure. Kind is set for definition errors,
// Position for input symbol errors.
type APIError struct {
	Message  string `json:"message"`
	Kind     string `json:"kind,omitempty"`
	State    string `json:"state,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Target   string `json:"target,omitempty"`
	Position int    `json:"position,omitempty"`
}

// ErrorResponse wraps an APIError for non-2xx replies.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ExampleSummary lists a built-in automaton.
type ExampleSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefinitionsResponse is the body returned by GET /definitions.
type DefinitionsResponse struct {
	Names []string `json:"names"`
}

// CreatedResponse is returned when the server picks the definition name.
type CreatedResponse struct {
	Name string `json:"name"`
}

// ChangeEvent is pushed to /events subscribers when a stored definition changes.
type ChangeEvent struct {
	Type string `json:"type"` // "saved" or "deleted"
	Name string `json:"name"`
}

func toDefinition(raw rawDefinition) (*domain.Definition, error) {
	rec, err := codec.FromMap(raw)
	if err != nil {
		return nil, err
	}
	return domain.FromRecord(rec), nil
}

func toAPIError(err error) APIError {
	out := APIError{Message: err.Error()}

	var defErr *domain.DefinitionError
	var inErr *domain.InputError
	switch {
	case errors.As(err, &defErr):
		out.Kind = string(defErr.Kind)
		out.State = defErr.State
		out.Symbol = defErr.Symbol
		out.Target = defErr.Target
	case errors.As(err, &inErr):
		out.Kind = string(domain.KindSymbolNotInAlphabet)
		out.Symbol = inErr.Symbol
		out.Position = inErr.Position
	}
	return out
}

func toRunResponse(res *domain.Result) RunResponse {
	trace := res.Trace
	if trace == nil {
		trace = domain.Trace{}
	}
	return RunResponse{
		Accepted:   res.Accepted,
		Verdict:    res.Verdict(),
		FinalState: res.FinalState,
		Stalled:    res.Stalled(),
		Trace:      trace,
		Explain:    res.Explain(),
	}
}
