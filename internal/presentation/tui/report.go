package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automaton/pkg/domain"
)

// ResultMarkdown renders a run as a markdown report with a step table.
func ResultMarkdown(res *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Run: `%s`\n\n", displayWord(strings.Join(res.Input, "")))

	if len(res.Trace) == 0 {
		sb.WriteString("_Empty input: no steps._\n\n")
	} else {
		sb.WriteString("| # | From | Symbol | To |\n|---|------|--------|----|\n")
		for _, st := range res.Trace {
			to := "_none_"
			if st.To != nil {
				to = "`" + *st.To + "`"
			}
			fmt.Fprintf(&sb, "| %d | `%s` | `%s` | %s |\n", st.Position, st.From, st.Symbol, to)
		}
		sb.WriteString("\n")
	}

	switch {
	case res.Stalled():
		last := res.Trace[len(res.Trace)-1]
		fmt.Fprintf(&sb, "No transition from `%s` on `%s`.\n\n", last.From, last.Symbol)
	default:
		fmt.Fprintf(&sb, "Final state: `%s`\n\n", res.FinalState)
	}
	fmt.Fprintf(&sb, "**%s**\n", res.Verdict())
	return sb.String()
}

// EnumerationMarkdown renders accepted strings as a numbered list.
func EnumerationMarkdown(words []string, maxResults, maxLength int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Accepted strings\n\nUp to %d strings of length at most %d.\n\n", maxResults, maxLength)
	if len(words) == 0 {
		sb.WriteString("_No accepted strings within the limits._\n")
		return sb.String()
	}
	for i, w := range words {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, displayWord(w))
	}
	return sb.String()
}

// ValidationMarkdown renders the outcome of a validation.
func ValidationMarkdown(d *domain.Definition, err error) string {
	var sb strings.Builder
	if err == nil {
		sb.WriteString("# Definition is valid\n\n")
		fmt.Fprintf(&sb, "- States: %d\n- Symbols: %d\n- Transitions: %d\n",
			len(d.States), len(d.Alphabet), d.Transitions.Len())
		if d.InitialState == "" {
			sb.WriteString("\n_No initial state: the language is empty._\n")
		}
		return sb.String()
	}

	sb.WriteString("# Definition is invalid\n\n")
	var defErr *domain.DefinitionError
	if errors.As(err, &defErr) {
		fmt.Fprintf(&sb, "- Kind: `%s`\n", defErr.Kind)
	}
	fmt.Fprintf(&sb, "- Error: %s\n", err)
	return sb.String()
}

func displayWord(w string) string {
	if w == "" {
		return "ε"
	}
	return w
}
