package domain

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// TransitionTable maps a source state to its outgoing edges, keyed by symbol.
//
// The table is deterministic by construction: a (state, symbol) pair holds at most one
// destination. Writing the same pair twice keeps the last destination ("last insert wins").
type TransitionTable map[string]map[string]string

// Set records src --sym--> dst, replacing any earlier destination for (src, sym).
func (t TransitionTable) Set(src, sym, dst string) {
	row, ok := t[src]
	if !ok {
		row = make(map[string]string)
		t[src] = row
	}
	row[sym] = dst
}

// Get returns the destination for (src, sym) and whether one is defined.
func (t TransitionTable) Get(src, sym string) (string, bool) {
	row, ok := t[src]
	if !ok {
		return "", false
	}
	dst, ok := row[sym]
	return dst, ok
}

// Len returns the number of (state, symbol) edges in the table.
func (t TransitionTable) Len() int {
	n := 0
	for _, row := range t {
		n += len(row)
	}
	return n
}

// Clone returns a deep copy of the table.
func (t TransitionTable) Clone() TransitionTable {
	out := make(TransitionTable, len(t))
	for src, row := range t {
		cp := make(map[string]string, len(row))
		for sym, dst := range row {
			cp[sym] = dst
		}
		out[src] = cp
	}
	return out
}

// Edge is a single flattened transition.
type Edge struct {
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`
}

// Edges returns the table flattened and sorted by source state, then symbol.
func (t TransitionTable) Edges() []Edge {
	edges := make([]Edge, 0, t.Len())
	for src, row := range t {
		for sym, dst := range row {
			edges = append(edges, Edge{From: src, Symbol: sym, To: dst})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].Symbol < edges[j].Symbol
	})
	return edges
}

// Definition is the 5-tuple of a deterministic finite automaton.
//
// A Definition may be assembled field by field and be inconsistent while doing so.
// Structural checks happen in validation, never in the constructor.
type Definition struct {
	States          map[string]struct{}
	Alphabet        []string
	InitialState    string
	AcceptingStates map[string]struct{}
	Transitions     TransitionTable
}

// NewDefinition builds a Definition from plain collections.
// Duplicate states collapse; duplicate alphabet symbols keep their first position.
func NewDefinition(states, alphabet []string, initial string, accepting []string, transitions map[string]map[string]string) *Definition {
	d := &Definition{
		States:          make(map[string]struct{}, len(states)),
		InitialState:    initial,
		AcceptingStates: make(map[string]struct{}, len(accepting)),
		Transitions:     make(TransitionTable, len(transitions)),
	}
	for _, s := range states {
		d.States[s] = struct{}{}
	}
	for _, sym := range alphabet {
		d.AddSymbol(sym)
	}
	for _, s := range accepting {
		d.AcceptingStates[s] = struct{}{}
	}
	for src, row := range transitions {
		for sym, dst := range row {
			d.Transitions.Set(src, sym, dst)
		}
	}
	return d
}

// AddState adds a state identifier.
func (d *Definition) AddState(id string) {
	if d.States == nil {
		d.States = make(map[string]struct{})
	}
	d.States[id] = struct{}{}
}

// AddSymbol appends a symbol to the alphabet unless it is already present.
func (d *Definition) AddSymbol(sym string) {
	if slices.Contains(d.Alphabet, sym) {
		return
	}
	d.Alphabet = append(d.Alphabet, sym)
}

// AddAccepting marks a state as accepting.
func (d *Definition) AddAccepting(id string) {
	if d.AcceptingStates == nil {
		d.AcceptingStates = make(map[string]struct{})
	}
	d.AcceptingStates[id] = struct{}{}
}

// SetTransition records a transition. Last insert wins for a repeated (src, sym) pair.
func (d *Definition) SetTransition(src, sym, dst string) {
	if d.Transitions == nil {
		d.Transitions = make(TransitionTable)
	}
	d.Transitions.Set(src, sym, dst)
}

// HasState reports whether id belongs to the state set.
func (d *Definition) HasState(id string) bool {
	_, ok := d.States[id]
	return ok
}

// HasSymbol reports whether sym belongs to the alphabet.
func (d *Definition) HasSymbol(sym string) bool {
	return slices.Contains(d.Alphabet, sym)
}

// IsAccepting reports whether id is an accepting state.
func (d *Definition) IsAccepting(id string) bool {
	_, ok := d.AcceptingStates[id]
	return ok
}

// IsEmpty reports an unconfigured automaton (no states).
func (d *Definition) IsEmpty() bool {
	return len(d.States) == 0
}

// SortedStates returns the state set in lexical order.
func (d *Definition) SortedStates() []string {
	return sortedKeys(d.States)
}

// SortedAccepting returns the accepting set in lexical order.
func (d *Definition) SortedAccepting() []string {
	return sortedKeys(d.AcceptingStates)
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	out := &Definition{
		States:          make(map[string]struct{}, len(d.States)),
		Alphabet:        slices.Clone(d.Alphabet),
		InitialState:    d.InitialState,
		AcceptingStates: make(map[string]struct{}, len(d.AcceptingStates)),
		Transitions:     d.Transitions.Clone(),
	}
	for s := range d.States {
		out.States[s] = struct{}{}
	}
	for s := range d.AcceptingStates {
		out.AcceptingStates[s] = struct{}{}
	}
	return out
}

// Equal reports structural equivalence: same sets, same alphabet sequence, same initial
// state and same transition contents.
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.InitialState != o.InitialState || !slices.Equal(d.Alphabet, o.Alphabet) {
		return false
	}
	if !slices.Equal(d.SortedStates(), o.SortedStates()) || !slices.Equal(d.SortedAccepting(), o.SortedAccepting()) {
		return false
	}
	return slices.Equal(d.Transitions.Edges(), o.Transitions.Edges())
}

// Tokenize splits an input string into alphabet symbols.
//
// When every symbol of the alphabet is a single rune the input is read one rune at a time.
// Otherwise symbols are separated by commas or whitespace.
func (d *Definition) Tokenize(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return []string{}
	}
	if d.singleRuneAlphabet() {
		out := make([]string, 0, utf8.RuneCountInString(input))
		for _, r := range input {
			out = append(out, string(r))
		}
		return out
	}
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func (d *Definition) singleRuneAlphabet() bool {
	for _, sym := range d.Alphabet {
		if utf8.RuneCountInString(sym) != 1 {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
