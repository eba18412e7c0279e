package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
)

func withStore(ctx context.Context, opts Options, fn func(*automaton.Workbench, *printer) error) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	logger := createLogger(opts)
	store, closer, err := OpenStore(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	wb := automaton.NewWorkbench(
		automaton.WithStore(store),
		automaton.WithLogger(logger),
		automaton.WithLifecycleHooks(createHooks(logger, nil)),
		automaton.WithName("store"),
	)
	return fn(wb, p)
}

// StoreSave validates the definition at source and saves it under name.
func StoreSave(ctx context.Context, opts Options, name, source string) error {
	def, err := LoadDefinition(source)
	if err != nil {
		return err
	}
	return withStore(ctx, opts, func(wb *automaton.Workbench, _ *printer) error {
		if err := wb.Apply(ctx, def); err != nil {
			return err
		}
		if err := wb.Save(ctx, name); err != nil {
			return err
		}
		printSystemMessage(opts.stderr(), "Saved '%s' to the %s store.", name, opts.Config.Store)
		return nil
	})
}

// StoreLoad prints a stored definition, or writes it to out when out is not empty.
func StoreLoad(ctx context.Context, opts Options, name, out string) error {
	return withStore(ctx, opts, func(wb *automaton.Workbench, p *printer) error {
		if err := wb.Load(ctx, name); err != nil {
			return err
		}
		def := wb.Current()
		if out != "" {
			if err := codec.WriteFile(out, def); err != nil {
				return err
			}
			printSystemMessage(opts.stderr(), "Wrote '%s' to %s", name, out)
			return nil
		}
		rec := domain.ToRecord(def)
		if p.format == OutputText {
			data, err := codec.Encode(rec, codec.YAML)
			if err != nil {
				return err
			}
			return p.raw(string(data))
		}
		return p.print("", rec)
	})
}

// StoreList prints the stored names.
func StoreList(ctx context.Context, opts Options) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	store, closer, err := OpenStore(ctx, opts.Config, createLogger(opts))
	if err != nil {
		return err
	}
	defer closer.Close()

	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	if p.format == OutputText {
		if len(names) == 0 {
			printSystemMessage(opts.stderr(), "No stored definitions.")
			return nil
		}
		return p.raw(strings.Join(names, "\n") + "\n")
	}
	return p.print("", names)
}

// StoreDelete removes a stored definition.
func StoreDelete(ctx context.Context, opts Options, name string) error {
	store, closer, err := OpenStore(ctx, opts.Config, createLogger(opts))
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	printSystemMessage(opts.stderr(), "Deleted '%s'.", name)
	return nil
}
