package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automaton/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
	// Stalled marks the current state as the place where a run got stuck.
	Stalled bool
}

// OverlayFromResult highlights the states a run went through.
func OverlayFromResult(res *domain.Result) *GraphOverlay {
	if res == nil {
		return nil
	}
	o := &GraphOverlay{CurrentState: res.FinalState, Stalled: res.Stalled()}
	for _, st := range res.Trace {
		o.VisitedStates = append(o.VisitedStates, st.From)
		if st.To != nil {
			o.VisitedStates = append(o.VisitedStates, *st.To)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart for a definition.
// It applies semantic styling:
// - Accepting state: (((Double circle)))
// - Other states: ((Circle))
// - Initial state: entered from a hidden start point
// Parallel edges between the same pair of states share one arrow with a joined label.
func GenerateMermaid(d *domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	// Node IDs are positional so arbitrary state names never clash after sanitizing.
	states := d.SortedStates()
	ids := make(map[string]string, len(states))
	for i, s := range states {
		ids[s] = fmt.Sprintf("s%d", i)
	}

	if id, ok := ids[d.InitialState]; ok {
		sb.WriteString("    start_(( )):::hidden --> " + id + "\n")
	}

	for _, s := range states {
		opener, closer := "((", "))"
		if d.IsAccepting(s) {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s], opener, escapeLabel(s), closer)
	}

	type pair struct{ from, to string }
	var order []pair
	labels := make(map[pair][]string)
	for _, e := range d.Transitions.Edges() {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			continue
		}
		p := pair{from, to}
		if _, seen := labels[p]; !seen {
			order = append(order, p)
		}
		labels[p] = append(labels[p], escapeLabel(e.Symbol))
	}
	for _, p := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", p.from, strings.Join(labels[p], ", "), p.to)
	}

	sb.WriteString("    classDef hidden fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills in either theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef stalled fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id, ok := ids[s]
			if !ok || visited[id] {
				continue
			}
			visited[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}

		if id, ok := ids[overlay.CurrentState]; ok {
			class := "current"
			if overlay.Stalled {
				class = "stalled"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", id, class)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
