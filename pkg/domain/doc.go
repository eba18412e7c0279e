/*
Package domain contains the data model of the automaton engine.

It defines the deterministic finite automaton itself and the values that flow in and out
of the engine. The package is pure: no I/O, no persistence, no logging.

# Key Entities

  - Definition: the 5-tuple (states, alphabet, initial state, accepting states, transitions).
  - TransitionTable: state -> symbol -> state, with a "last insert wins" policy.
  - Record: the flat, JSON/YAML friendly interchange form of a Definition.
  - Step, Trace, Result: the observable outcome of simulating one input.
  - DefinitionError, InputError: the two disjoint error taxonomies.
  - LifecycleHooks: callbacks fired by hosts for auditing and metrics.
*/
package domain
