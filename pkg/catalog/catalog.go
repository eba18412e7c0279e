// Package catalog provides the built-in sample automata.
//
// The entries are read-only data for hosts (CLI, HTTP, MCP); the engine never consults them.
// Every lookup returns a fresh Definition, so callers may mutate what they receive.
package catalog

import (
	"fmt"
	"sort"

	"github.com/aretw0/automaton/pkg/domain"
)

// Names of the built-in automata.
const (
	EvenOnes      = "even-ones"
	EndsIn01      = "ends-in-01"
	OnlyZeros     = "only-zeros"
	AtLeastOneOne = "at-least-one-1"
)

// Entry describes one sample automaton.
type Entry struct {
	Name        string
	Description string
	record      domain.Record
}

// Definition returns a fresh copy of the entry's automaton.
func (e Entry) Definition() *domain.Definition {
	return domain.FromRecord(e.record)
}

func initial(s string) *string { return &s }

var binary = []string{"0", "1"}

var entries = map[string]Entry{
	EvenOnes: {
		Name:        EvenOnes,
		Description: "binary strings with an even number of 1s",
		record: domain.Record{
			States:          []string{"q0", "q1"},
			Alphabet:        binary,
			InitialState:    initial("q0"),
			AcceptingStates: []string{"q0"},
			Transitions: map[string]map[string]string{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q1", "1": "q0"},
			},
		},
	},
	EndsIn01: {
		Name:        EndsIn01,
		Description: "binary strings ending in 01",
		record: domain.Record{
			States:          []string{"q0", "q1", "q2"},
			Alphabet:        binary,
			InitialState:    initial("q0"),
			AcceptingStates: []string{"q2"},
			Transitions: map[string]map[string]string{
				"q0": {"0": "q1", "1": "q0"},
				"q1": {"0": "q1", "1": "q2"},
				"q2": {"0": "q1", "1": "q0"},
			},
		},
	},
	OnlyZeros: {
		Name:        OnlyZeros,
		Description: "strings made only of 0s (0*)",
		record: domain.Record{
			States:          []string{"q0", "q1"},
			Alphabet:        binary,
			InitialState:    initial("q0"),
			AcceptingStates: []string{"q0"},
			Transitions: map[string]map[string]string{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q1", "1": "q1"},
			},
		},
	},
	AtLeastOneOne: {
		Name:        AtLeastOneOne,
		Description: "binary strings with at least one 1",
		record: domain.Record{
			States:          []string{"q0", "q1"},
			Alphabet:        binary,
			InitialState:    initial("q0"),
			AcceptingStates: []string{"q1"},
			Transitions: map[string]map[string]string{
				"q0": {"0": "q0", "1": "q1"},
				"q1": {"0": "q1", "1": "q1"},
			},
		},
	},
}

// Names returns the catalog entry names in lexical order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries ordered by name.
func Entries() []Entry {
	out := make([]Entry, 0, len(entries))
	for _, name := range Names() {
		out = append(out, entries[name])
	}
	return out
}

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, error) {
	e, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown example %q (available: %v)", name, Names())
	}
	return e, nil
}

// Get returns a fresh Definition for the named example.
func Get(name string) (*domain.Definition, error) {
	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.Definition(), nil
}
