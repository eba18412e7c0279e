package runtime

import (
	"github.com/aretw0/automaton/pkg/domain"
)

// Run consumes input from the initial state and records every step.
//
// Every symbol is checked against the alphabet before the first transition; an unknown
// symbol fails the whole run with *domain.InputError and no trace. A missing transition
// is not an error: the stalled step is recorded with a nil destination and the input is
// rejected.
func (m *Machine) Run(input []string) (*domain.Result, error) {
	syms := make([]int, len(input))
	for i, sym := range input {
		idx, ok := m.symbolIdx[sym]
		if !ok {
			return nil, &domain.InputError{Position: i + 1, Symbol: sym}
		}
		syms[i] = idx
	}

	res := &domain.Result{
		Input: append([]string{}, input...),
		Trace: make(domain.Trace, 0, len(input)),
	}

	cur := m.initial
	for i, sym := range syms {
		step := domain.Step{Position: i + 1, From: m.name(cur), Symbol: input[i]}
		nxt := m.next(cur, sym)
		if nxt == absent {
			res.Trace = append(res.Trace, step)
			res.FinalState = m.name(cur)
			return res, nil
		}
		to := m.name(nxt)
		step.To = &to
		res.Trace = append(res.Trace, step)
		cur = nxt
	}

	res.FinalState = m.name(cur)
	res.Accepted = m.isAccepting(cur)
	return res, nil
}

// Accepts reports whether input is accepted, without building a trace.
func (m *Machine) Accepts(input []string) (bool, error) {
	cur := m.initial
	for i, sym := range input {
		idx, ok := m.symbolIdx[sym]
		if !ok {
			return false, &domain.InputError{Position: i + 1, Symbol: sym}
		}
		if cur != absent {
			cur = m.next(cur, idx)
		}
	}
	return m.isAccepting(cur), nil
}
