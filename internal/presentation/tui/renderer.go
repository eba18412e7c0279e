package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a glamour renderer with automatic light/dark detection.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return PlainRenderer()
	}
	return r.Render
}

// PlainRenderer returns the markdown unchanged.
func PlainRenderer() Renderer {
	return func(markdown string) (string, error) {
		return markdown, nil
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RendererFor picks glamour for terminals and plain output for pipes and files.
func RendererFor(f *os.File) Renderer {
	if IsTerminal(f) {
		return NewRenderer()
	}
	return PlainRenderer()
}
