package runtime

import (
	"sort"

	"github.com/aretw0/automaton/pkg/domain"
)

// Validate checks the structural invariants of d and returns the first violation.
//
// Checks run by kind: initial state, accepting subset, transition sources, transition
// symbols, transition targets. Within a kind, states and symbols are visited in lexical
// order so the reported offender is stable across runs. Validate never mutates d.
func Validate(d *domain.Definition) error {
	if d.InitialState != "" && !d.HasState(d.InitialState) {
		return &domain.DefinitionError{Kind: domain.KindInitialStateNotInStates, State: d.InitialState}
	}

	for _, s := range d.SortedAccepting() {
		if !d.HasState(s) {
			return &domain.DefinitionError{Kind: domain.KindAcceptingStatesNotSubset, State: s}
		}
	}

	sources := make([]string, 0, len(d.Transitions))
	for src := range d.Transitions {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	for _, src := range sources {
		if !d.HasState(src) {
			return &domain.DefinitionError{Kind: domain.KindTransitionSourceUnknown, State: src}
		}
	}

	edges := d.Transitions.Edges()
	for _, e := range edges {
		if !d.HasSymbol(e.Symbol) {
			return &domain.DefinitionError{Kind: domain.KindSymbolNotInAlphabet, State: e.From, Symbol: e.Symbol}
		}
	}
	for _, e := range edges {
		if !d.HasState(e.To) {
			return &domain.DefinitionError{Kind: domain.KindTransitionTargetUnknown, State: e.From, Symbol: e.Symbol, Target: e.To}
		}
	}

	return nil
}
