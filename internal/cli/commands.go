package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/internal/presentation/graph"
	"github.com/aretw0/automaton/internal/presentation/tui"
	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
)

// ErrValidationFailed is returned after an invalid definition has been reported.
var ErrValidationFailed = errors.New("definition is invalid")

type validateReport struct {
	Valid bool   `json:"valid" yaml:"valid"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type runReport struct {
	Input  string         `json:"input" yaml:"input"`
	Result *domain.Result `json:"result" yaml:"result"`
}

type enumerateReport struct {
	Strings    []string `json:"strings" yaml:"strings"`
	MaxResults int      `json:"max_results" yaml:"max_results"`
	MaxLength  int      `json:"max_length" yaml:"max_length"`
}

type exampleReport struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Definition  *domain.Record `json:"definition,omitempty" yaml:"definition,omitempty"`
}

func newWorkbench(opts Options) *automaton.Workbench {
	logger := createLogger(opts)
	return automaton.NewWorkbench(
		automaton.WithLogger(logger),
		automaton.WithLifecycleHooks(createHooks(logger, nil)),
		automaton.WithName("cli"),
	)
}

// Validate reports whether the definition at source is valid.
func Validate(ctx context.Context, opts Options, source string) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	def, err := LoadDefinition(source)
	if err != nil {
		return err
	}

	verr := newWorkbench(opts).Apply(ctx, def)
	report := validateReport{Valid: verr == nil}
	if verr != nil {
		report.Error = verr.Error()
		var defErr *domain.DefinitionError
		if errors.As(verr, &defErr) {
			report.Kind = string(defErr.Kind)
		}
	}
	if err := p.print(tui.ValidationMarkdown(def, verr), report); err != nil {
		return err
	}
	if verr != nil {
		return ErrValidationFailed
	}
	return nil
}

// Run simulates each input on the definition at source.
// With symbols set, each input is one symbol; otherwise each input is tokenized.
func Run(ctx context.Context, opts Options, source string, inputs []string, symbols bool) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	def, err := LoadDefinition(source)
	if err != nil {
		return err
	}
	wb := newWorkbench(opts)
	if err := wb.Apply(ctx, def); err != nil {
		return err
	}

	if symbols {
		res, err := wb.Run(ctx, inputs)
		if err != nil {
			return err
		}
		return p.print(tui.ResultMarkdown(res), runReport{Input: strings.Join(inputs, ""), Result: res})
	}

	if len(inputs) == 0 {
		inputs = []string{""}
	}
	var md []string
	reports := make([]runReport, 0, len(inputs))
	for _, in := range inputs {
		res, err := wb.RunString(ctx, in)
		if err != nil {
			return fmt.Errorf("input %q: %w", in, err)
		}
		md = append(md, tui.ResultMarkdown(res))
		reports = append(reports, runReport{Input: in, Result: res})
	}
	return p.print(strings.Join(md, "\n---\n\n"), reports)
}

// Enumerate lists accepted strings of the definition at source.
func Enumerate(ctx context.Context, opts Options, source string, maxResults, maxLength int) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	def, err := LoadDefinition(source)
	if err != nil {
		return err
	}
	wb := newWorkbench(opts)
	if err := wb.Apply(ctx, def); err != nil {
		return err
	}
	words, err := wb.Enumerate(ctx, maxResults, maxLength)
	if err != nil {
		return err
	}
	return p.print(tui.EnumerationMarkdown(words, maxResults, maxLength),
		enumerateReport{Strings: words, MaxResults: maxResults, MaxLength: maxLength})
}

// Graph prints the Mermaid flowchart of the definition at source.
// When input is not nil its run is highlighted.
func Graph(opts Options, source string, input *string) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	def, err := LoadDefinition(source)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if input != nil {
		res, err := automaton.RunString(def, *input)
		if err != nil {
			return err
		}
		overlay = graph.OverlayFromResult(res)
	} else if err := automaton.Validate(def); err != nil {
		return err
	}
	return p.raw(graph.GenerateMermaid(def, overlay))
}

// Convert rewrites a definition file in the format implied by the output extension.
func Convert(opts Options, in, out string) error {
	def, err := LoadDefinition(in)
	if err != nil {
		return err
	}
	if err := codec.WriteFile(out, def); err != nil {
		return err
	}
	printSystemMessage(opts.stderr(), "Wrote %s", out)
	return nil
}

// Examples lists the built-in automata, or prints one of them.
func Examples(opts Options, name string) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}

	if name == "" {
		var sb strings.Builder
		sb.WriteString("# Examples\n\n")
		reports := []exampleReport{}
		for _, e := range catalog.Entries() {
			fmt.Fprintf(&sb, "- `%s`: %s\n", e.Name, e.Description)
			reports = append(reports, exampleReport{Name: e.Name, Description: e.Description})
		}
		return p.print(sb.String(), reports)
	}

	e, err := catalog.Lookup(name)
	if err != nil {
		return err
	}
	rec := domain.ToRecord(e.Definition())
	if p.format == OutputText {
		data, err := codec.Encode(rec, codec.YAML)
		if err != nil {
			return err
		}
		md := fmt.Sprintf("# %s\n\n%s\n\n```yaml\n%s```\n", e.Name, e.Description, data)
		return p.print(md, nil)
	}
	return p.print("", exampleReport{Name: e.Name, Description: e.Description, Definition: &rec})
}
