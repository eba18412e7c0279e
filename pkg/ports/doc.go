/*
Package ports defines the driven ports (interfaces) of the automaton engine's hosts.

These interfaces decouple the workbench from storage backends.

# Key Interfaces

  - DefinitionStore: persists and loads named automaton definitions.
*/
package ports
