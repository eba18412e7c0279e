// Command gen-examples writes the built-in automata to disk as JSON and YAML files.
//
// The output doubles as a fixture set for 'automaton run' and 'automaton watch'.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/codec"
)

func main() {
	targetDir := "examples/definitions"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		fail(err)
	}

	fmt.Printf("Generating examples in: %s\n", targetDir)
	for _, e := range catalog.Entries() {
		for _, ext := range []string{".json", ".yaml"} {
			path := filepath.Join(targetDir, e.Name+ext)
			if err := codec.WriteFile(path, e.Definition()); err != nil {
				fail(err)
			}
			fmt.Printf("  %s\n", path)
		}
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
