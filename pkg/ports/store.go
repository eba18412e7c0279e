package ports

import (
	"context"

	"github.com/aretw0/automaton/pkg/domain"
)

// DefinitionStore persists automaton definitions under a name.
// Stores keep definitions as records and never validate them.
type DefinitionStore interface {
	// Save persists the definition, replacing any previous one with the same name.
	Save(ctx context.Context, name string, def *domain.Definition) error

	// Load retrieves a definition.
	// Returns domain.ErrDefinitionNotFound if nothing is stored under name.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// Delete removes a definition. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names.
	List(ctx context.Context) ([]string, error)
}
