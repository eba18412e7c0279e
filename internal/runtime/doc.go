/*
Package runtime is the automaton engine.

Validate checks a Definition; Compile turns a valid Definition into a Machine, a dense
state x symbol table. A Machine simulates inputs (Run, Accepts) and enumerates the
accepted language breadth-first (Enumerate). Every operation is a pure, synchronous
computation over in-memory data.
*/
package runtime
