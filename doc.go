/*
Package automaton is a deterministic finite automaton (DFA) engine.

It validates automaton definitions, simulates input strings with a full step-by-step trace,
and enumerates the accepted language in shortlex order (shortest first, ties broken by
alphabet order). Hosts such as the CLI, the HTTP server and the MCP server sit on top of the
same core.

# Concept

A Definition is plain data: states, an ordered alphabet, an initial state, accepting states
and a partial transition function. Validate reports the first structural defect as a
*domain.DefinitionError. Compile turns a valid definition into an immutable Machine that
runs and enumerates without further checks.

A missing transition is not an error. The run stops, the last step has no destination and
the input is rejected.

# Usage

	d := domain.NewDefinition(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		"q0",
		[]string{"q0"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q0"},
		},
	)

	res, err := automaton.RunString(d, "0110")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(res.Explain())

	words, _ := automaton.Enumerate(d, automaton.DefaultMaxResults, automaton.DefaultMaxLength)
	fmt.Println(words)

Long-lived hosts hold the current definition in a Workbench, which keeps the previous
definition in effect when a new one fails validation.
*/
package automaton
