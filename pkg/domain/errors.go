package domain

import (
	"errors"
	"fmt"
)

// ErrorKind names a structural defect of a Definition.
type ErrorKind string

const (
	KindInitialStateNotInStates  ErrorKind = "InitialStateNotInStates"
	KindAcceptingStatesNotSubset ErrorKind = "AcceptingStatesNotSubset"
	KindTransitionSourceUnknown  ErrorKind = "TransitionSourceUnknown"
	KindSymbolNotInAlphabet      ErrorKind = "SymbolNotInAlphabet"
	KindTransitionTargetUnknown  ErrorKind = "TransitionTargetUnknown"
)

var (
	ErrInitialStateNotInStates  = errors.New("initial state not in states")
	ErrAcceptingStatesNotSubset = errors.New("accepting states not a subset of states")
	ErrTransitionSourceUnknown  = errors.New("transition from unknown state")
	ErrTransitionTargetUnknown  = errors.New("transition to unknown state")

	// ErrSymbolNotInAlphabet matches both a definition whose transitions use a foreign
	// symbol and an input string containing one. Use errors.As with *DefinitionError or
	// *InputError to tell them apart.
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
)

// ErrDefinitionNotFound is returned by stores when no definition is saved under a name.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrInvalidName is returned by stores for names they cannot hold.
var ErrInvalidName = errors.New("invalid definition name")

// ErrNotApplied is returned when simulation or enumeration is requested before any
// definition has been applied.
var ErrNotApplied = errors.New("no definition applied")

// ErrInvalidLimits is returned when enumeration bounds are negative.
var ErrInvalidLimits = errors.New("invalid enumeration limits")

var kindSentinels = map[ErrorKind]error{
	KindInitialStateNotInStates:  ErrInitialStateNotInStates,
	KindAcceptingStatesNotSubset: ErrAcceptingStatesNotSubset,
	KindTransitionSourceUnknown:  ErrTransitionSourceUnknown,
	KindSymbolNotInAlphabet:      ErrSymbolNotInAlphabet,
	KindTransitionTargetUnknown:  ErrTransitionTargetUnknown,
}

// DefinitionError reports the first structural defect found in a Definition.
type DefinitionError struct {
	Kind   ErrorKind
	State  string // offending state, when relevant
	Symbol string // offending symbol, when relevant
	Target string // unknown destination, for KindTransitionTargetUnknown
}

func (e *DefinitionError) Error() string {
	switch e.Kind {
	case KindInitialStateNotInStates:
		return fmt.Sprintf("initial state %q is not in states", e.State)
	case KindAcceptingStatesNotSubset:
		return fmt.Sprintf("accepting state %q is not in states", e.State)
	case KindTransitionSourceUnknown:
		return fmt.Sprintf("transition from unknown state %q", e.State)
	case KindSymbolNotInAlphabet:
		return fmt.Sprintf("symbol %q in transitions from %q is not in the alphabet", e.Symbol, e.State)
	case KindTransitionTargetUnknown:
		return fmt.Sprintf("transition (%s, %s) leads to unknown state %q", e.State, e.Symbol, e.Target)
	default:
		return fmt.Sprintf("invalid definition: %s", e.Kind)
	}
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *DefinitionError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// InputError reports an input symbol outside the alphabet. Position is 1-indexed.
type InputError struct {
	Position int
	Symbol   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d is not in the alphabet", e.Symbol, e.Position)
}

func (e *InputError) Unwrap() error {
	return ErrSymbolNotInAlphabet
}
