package domain

import (
	"fmt"
	"strings"
)

// Step records one consumed symbol. Position is 1-indexed.
// To is nil when From has no transition on Symbol; the run stops there.
type Step struct {
	Position int     `json:"position" yaml:"position"`
	From     string  `json:"from" yaml:"from"`
	Symbol   string  `json:"symbol" yaml:"symbol"`
	To       *string `json:"to" yaml:"to"`
}

// Stalled reports whether the step found no transition.
func (s Step) Stalled() bool {
	return s.To == nil
}

func (s Step) String() string {
	if s.To == nil {
		return fmt.Sprintf("%d. from (%s) on '%s': no transition -> REJECTED", s.Position, s.From, s.Symbol)
	}
	return fmt.Sprintf("%d. from (%s) on '%s' -> (%s)", s.Position, s.From, s.Symbol, *s.To)
}

// Trace is the ordered list of steps of one run.
type Trace []Step

// Result is the outcome of simulating one input.
type Result struct {
	Input      []string `json:"input" yaml:"input"`
	Trace      Trace    `json:"trace" yaml:"trace"`
	Accepted   bool     `json:"accepted" yaml:"accepted"`
	FinalState string   `json:"final_state" yaml:"final_state"`
}

// Stalled reports a rejection caused by a missing transition.
func (r *Result) Stalled() bool {
	return len(r.Trace) > 0 && r.Trace[len(r.Trace)-1].Stalled()
}

// Verdict returns "ACCEPTED" or "REJECTED".
func (r *Result) Verdict() string {
	if r.Accepted {
		return "ACCEPTED"
	}
	return "REJECTED"
}

// Explain renders the result as plain text, one line per step.
func (r *Result) Explain() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "input: %q\n", strings.Join(r.Input, ""))
	if len(r.Trace) == 0 {
		sb.WriteString("(empty input)\n")
	}
	for _, st := range r.Trace {
		sb.WriteString(st.String())
		sb.WriteByte('\n')
	}
	if !r.Stalled() {
		fmt.Fprintf(&sb, "final state: (%s)\n", r.FinalState)
	}
	fmt.Fprintf(&sb, "result: %s\n", r.Verdict())
	return sb.String()
}
