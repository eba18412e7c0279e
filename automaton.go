package automaton

import (
	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/domain"
)

// Default enumeration bounds used by hosts.
const (
	DefaultMaxResults = 10
	DefaultMaxLength  = 20
)

// Machine is a compiled, validated automaton. It is immutable and safe for concurrent use.
type Machine = runtime.Machine

// Validate checks the structural invariants of d and returns the first violation as a
// *domain.DefinitionError. It never mutates d.
func Validate(d *domain.Definition) error {
	return runtime.Validate(d)
}

// Compile validates d and returns its compiled Machine.
func Compile(d *domain.Definition) (*Machine, error) {
	return runtime.Compile(d)
}

// Run validates d and simulates input symbol by symbol.
//
// A definition error is returned as *domain.DefinitionError; an input symbol outside the
// alphabet as *domain.InputError. A missing transition is not an error: the result is
// rejected and its last step has no destination.
func Run(d *domain.Definition, input []string) (*domain.Result, error) {
	m, err := runtime.Compile(d)
	if err != nil {
		return nil, err
	}
	return m.Run(input)
}

// RunString tokenizes input with d.Tokenize and runs it.
func RunString(d *domain.Definition, input string) (*domain.Result, error) {
	return Run(d, d.Tokenize(input))
}

// Enumerate validates d and returns up to maxResults accepted strings of at most
// maxLength symbols, shortest first, ties broken by alphabet order.
func Enumerate(d *domain.Definition, maxResults, maxLength int) ([]string, error) {
	m, err := runtime.Compile(d)
	if err != nil {
		return nil, err
	}
	return m.Enumerate(maxResults, maxLength)
}

// ToRecord converts d into its interchange record.
func ToRecord(d *domain.Definition) domain.Record {
	return domain.ToRecord(d)
}

// FromRecord builds a Definition from a record without validating it.
func FromRecord(r domain.Record) *domain.Definition {
	return domain.FromRecord(r)
}
