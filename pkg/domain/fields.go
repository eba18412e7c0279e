package domain

import "strings"

// TransitionRow is one row of a transition table as typed by a user: source, symbol, destination.
type TransitionRow [3]string

// RawFields holds the five automaton fields as free text, the way a form collects them.
type RawFields struct {
	States    string          // comma separated
	Alphabet  string          // comma separated, order preserved
	Initial   string          // single identifier, may be empty
	Accepting string          // comma separated
	Rows      []TransitionRow // rows with an empty cell are ignored
}

// ParseFields builds a Definition from raw text fields.
// Items are trimmed and empty items dropped. Rows are applied in order, so a later
// row for the same (state, symbol) replaces an earlier one.
func ParseFields(f RawFields) *Definition {
	d := NewDefinition(splitList(f.States), splitList(f.Alphabet), strings.TrimSpace(f.Initial), splitList(f.Accepting), nil)
	for _, row := range f.Rows {
		src := strings.TrimSpace(row[0])
		sym := strings.TrimSpace(row[1])
		dst := strings.TrimSpace(row[2])
		if src == "" || sym == "" || dst == "" {
			continue
		}
		d.SetTransition(src, sym, dst)
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
