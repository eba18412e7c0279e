package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/ports"
)

type validationMiddleware struct {
	next ports.DefinitionStore
}

// NewValidationMiddleware creates a middleware that refuses to save invalid definitions.
// Loads are passed through untouched, so definitions written by other tools stay readable.
func NewValidationMiddleware() Middleware {
	return func(next ports.DefinitionStore) ports.DefinitionStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, name string, def *domain.Definition) error {
	if err := runtime.Validate(def); err != nil {
		return fmt.Errorf("refusing to save %q: %w", name, err)
	}
	return m.next.Save(ctx, name, def)
}

func (m *validationMiddleware) Load(ctx context.Context, name string) (*domain.Definition, error) {
	return m.next.Load(ctx, name)
}

func (m *validationMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
