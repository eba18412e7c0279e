package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/automaton/internal/presentation/tui"
)

// printer writes command results as rendered markdown, JSON or YAML.
type printer struct {
	w      io.Writer
	format string
	render tui.Renderer
}

func newPrinter(opts Options) (*printer, error) {
	p := &printer{w: opts.stdout(), format: opts.Output, render: tui.PlainRenderer()}
	switch p.format {
	case "", OutputText:
		p.format = OutputText
		if f, ok := p.w.(*os.File); ok {
			p.render = tui.RendererFor(f)
		}
	case OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.Output)
	}
	return p, nil
}

// print writes md in text mode and v otherwise.
func (p *printer) print(md string, v any) error {
	switch p.format {
	case OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		out, err := p.render(md)
		if err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
		_, err = io.WriteString(p.w, out)
		return err
	}
}

// raw writes s unchanged regardless of the format.
func (p *printer) raw(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}
