package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner with the version underneath.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`    _         _                        _              `, "#818cf8"},
		{`   / \  _   _| |_ ___  _ __ ___   __ _| |_ ___  _ __  `, "#a78bfa"},
		{`  / _ \| | | | __/ _ \| '_ ' _ \ / _' | __/ _ \| '_ \ `, "#c084fc"},
		{` / ___ \ |_| | || (_) | | | | | | (_| | || (_) | | | |`, "#e879f9"},
		{`/_/   \_\__,_|\__\___/|_| |_| |_|\__,_|\__\___/|_| |_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Foreground(p.Color("#fb7185")).Faint())
	fmt.Fprintln(w)
}
