package runtime

import (
	"github.com/aretw0/automaton/pkg/domain"
)

// absent marks a missing transition or an unset initial state.
const absent = -1

// Machine is the compiled form of a validated Definition.
//
// States are interned in lexical order and symbols in alphabet order, so the
// transition function is a dense table indexed by state*len(symbols)+symbol.
// A Machine is immutable and safe for concurrent use.
type Machine struct {
	states    []string
	symbols   []string
	stateIdx  map[string]int
	symbolIdx map[string]int
	delta     []int
	initial   int
	accepting []bool
}

// Compile validates d and builds its Machine.
func Compile(d *domain.Definition) (*Machine, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}

	m := &Machine{
		states:    d.SortedStates(),
		symbols:   append([]string(nil), d.Alphabet...),
		stateIdx:  make(map[string]int, len(d.States)),
		symbolIdx: make(map[string]int, len(d.Alphabet)),
		initial:   absent,
	}
	for i, s := range m.states {
		m.stateIdx[s] = i
	}
	for i, sym := range m.symbols {
		m.symbolIdx[sym] = i
	}

	m.accepting = make([]bool, len(m.states))
	for s := range d.AcceptingStates {
		m.accepting[m.stateIdx[s]] = true
	}

	m.delta = make([]int, len(m.states)*len(m.symbols))
	for i := range m.delta {
		m.delta[i] = absent
	}
	for _, e := range d.Transitions.Edges() {
		m.delta[m.stateIdx[e.From]*len(m.symbols)+m.symbolIdx[e.Symbol]] = m.stateIdx[e.To]
	}

	if d.InitialState != "" {
		m.initial = m.stateIdx[d.InitialState]
	}
	return m, nil
}

// next returns the destination of (state, symbol) or absent.
func (m *Machine) next(state, symbol int) int {
	if state == absent {
		return absent
	}
	return m.delta[state*len(m.symbols)+symbol]
}

func (m *Machine) name(state int) string {
	if state == absent {
		return ""
	}
	return m.states[state]
}

func (m *Machine) isAccepting(state int) bool {
	return state != absent && m.accepting[state]
}

// NumStates returns the number of interned states.
func (m *Machine) NumStates() int { return len(m.states) }

// Alphabet returns the symbols in declared order.
func (m *Machine) Alphabet() []string { return append([]string(nil), m.symbols...) }

// Reachable returns the states reachable from the initial state, in interned order.
func (m *Machine) Reachable() []string {
	seen := m.forward()
	out := make([]string, 0, len(m.states))
	for i, ok := range seen {
		if ok {
			out = append(out, m.states[i])
		}
	}
	return out
}

func (m *Machine) forward() []bool {
	seen := make([]bool, len(m.states))
	if m.initial == absent {
		return seen
	}
	stack := []int{m.initial}
	seen[m.initial] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for sym := range m.symbols {
			if n := m.next(s, sym); n != absent && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return seen
}

// live marks the states from which some accepting state can be reached.
func (m *Machine) live() []bool {
	live := make([]bool, len(m.states))
	copy(live, m.accepting)
	for changed := true; changed; {
		changed = false
		for s := range m.states {
			if live[s] {
				continue
			}
			for sym := range m.symbols {
				if n := m.next(s, sym); n != absent && live[n] {
					live[s] = true
					changed = true
					break
				}
			}
		}
	}
	return live
}
