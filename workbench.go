package automaton

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/ports"
)

// Workbench holds the currently applied automaton on behalf of a host.
//
// A definition becomes current only after it validates; a rejected definition leaves the
// previous one in effect. Run and Enumerate always use the current definition.
// A Workbench is safe for concurrent use.
type Workbench struct {
	mu      sync.RWMutex
	def     *domain.Definition
	machine *runtime.Machine

	name   string
	store  ports.DefinitionStore
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Workbench.
type Option func(*Workbench)

// WithStore sets the store used by Save and Load.
func WithStore(s ports.DefinitionStore) Option {
	return func(w *Workbench) {
		w.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workbench) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// WithName labels the workbench in logs and events.
func WithName(name string) Option {
	return func(w *Workbench) {
		w.name = name
	}
}

// NewWorkbench creates an empty Workbench. Nothing is applied until Apply succeeds.
func NewWorkbench(opts ...Option) *Workbench {
	w := &Workbench{}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w.name != "" {
		w.logger = w.logger.With("workbench", w.name)
	}
	return w
}

// Name returns the workbench label.
func (w *Workbench) Name() string {
	return w.name
}

func (w *Workbench) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Name: w.name}
}

// Apply validates def and makes a private copy of it current.
// On failure the previously applied definition stays in effect.
func (w *Workbench) Apply(ctx context.Context, def *domain.Definition) error {
	cp := def.Clone()
	evt := &domain.DefinitionEvent{
		States:      len(cp.States),
		Symbols:     len(cp.Alphabet),
		Transitions: cp.Transitions.Len(),
	}

	m, err := runtime.Compile(cp)
	if err != nil {
		evt.EventBase = w.base(domain.EventReject)
		evt.Err = err
		w.logger.Debug("definition rejected", "err", err)
		if w.hooks.OnReject != nil {
			w.hooks.OnReject(ctx, evt)
		}
		return err
	}

	w.mu.Lock()
	w.def = cp
	w.machine = m
	w.mu.Unlock()

	evt.EventBase = w.base(domain.EventApply)
	w.logger.Debug("definition applied", "states", evt.States, "symbols", evt.Symbols)
	if w.hooks.OnApply != nil {
		w.hooks.OnApply(ctx, evt)
	}
	return nil
}

// Current returns a copy of the applied definition, or nil if none was applied.
func (w *Workbench) Current() *domain.Definition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.def == nil {
		return nil
	}
	return w.def.Clone()
}

func (w *Workbench) current() (*runtime.Machine, *domain.Definition, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.machine == nil {
		return nil, nil, domain.ErrNotApplied
	}
	return w.machine, w.def, nil
}

// Run simulates input on the applied definition.
func (w *Workbench) Run(ctx context.Context, input []string) (*domain.Result, error) {
	m, _, err := w.current()
	if err != nil {
		return nil, err
	}

	res, err := m.Run(input)

	evt := &domain.RunEvent{EventBase: w.base(domain.EventRun), Err: err}
	if res != nil {
		evt.Steps = len(res.Trace)
		evt.Accepted = res.Accepted
		evt.Stalled = res.Stalled()
		evt.Final = res.FinalState
	}
	if w.hooks.OnRun != nil {
		w.hooks.OnRun(ctx, evt)
	}
	return res, err
}

// RunString tokenizes input against the applied alphabet and runs it.
func (w *Workbench) RunString(ctx context.Context, input string) (*domain.Result, error) {
	_, def, err := w.current()
	if err != nil {
		return nil, err
	}
	return w.Run(ctx, def.Tokenize(input))
}

// Enumerate lists accepted strings of the applied definition.
func (w *Workbench) Enumerate(ctx context.Context, maxResults, maxLength int) ([]string, error) {
	m, _, err := w.current()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := m.Enumerate(maxResults, maxLength)
	if err != nil {
		return nil, err
	}

	if w.hooks.OnEnumerate != nil {
		w.hooks.OnEnumerate(ctx, &domain.EnumerateEvent{
			EventBase:  w.base(domain.EventEnumerate),
			MaxResults: maxResults,
			MaxLength:  maxLength,
			Found:      len(out),
			Duration:   time.Since(start),
		})
	}
	return out, nil
}

// Save stores the applied definition under name.
func (w *Workbench) Save(ctx context.Context, name string) error {
	if w.store == nil {
		return fmt.Errorf("workbench has no store configured")
	}
	_, def, err := w.current()
	if err != nil {
		return err
	}
	if err := w.store.Save(ctx, name, def); err != nil {
		return fmt.Errorf("failed to save definition %q: %w", name, err)
	}
	w.logger.Info("definition saved", "name", name)
	return nil
}

// Load reads a stored definition and applies it.
func (w *Workbench) Load(ctx context.Context, name string) error {
	if w.store == nil {
		return fmt.Errorf("workbench has no store configured")
	}
	def, err := w.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load definition %q: %w", name, err)
	}
	return w.Apply(ctx, def)
}

// LoadExample applies a built-in sample automaton.
func (w *Workbench) LoadExample(ctx context.Context, name string) error {
	def, err := catalog.Get(name)
	if err != nil {
		return err
	}
	return w.Apply(ctx, def)
}
