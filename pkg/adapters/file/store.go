package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/ports"
)

var _ ports.DefinitionStore = (*Store)(nil)

// Store implements ports.DefinitionStore using the local filesystem.
// Each definition is a JSON record named <name>.json in the base directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automaton/definitions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".automaton", "definitions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return filepath.Join(s.BasePath, name+".json"), nil
}

// Save persists the definition atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, def *domain.Definition) error {
	destPath, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure definition directory: %w", err)
	}

	data, err := codec.Encode(domain.ToRecord(def), codec.JSON)
	if err != nil {
		return err
	}

	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Close before rename; Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing definition for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the definition file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Definition, error) {
	filePath, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDefinitionNotFound
		}
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	rec, err := codec.Decode(data, codec.JSON)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", name, err)
	}
	return domain.FromRecord(rec), nil
}

// Delete removes the definition file.
func (s *Store) Delete(ctx context.Context, name string) error {
	filePath, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete definition file: %w", err)
	}
	return nil
}

// List returns the stored definition names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		fn := entry.Name()
		if entry.IsDir() || filepath.Ext(fn) != ".json" || strings.HasPrefix(fn, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(fn, ".json"))
	}
	sort.Strings(names)
	return names, nil
}
