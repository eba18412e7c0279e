package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/automaton/internal/config"
	"github.com/aretw0/automaton/pkg/adapters/file"
	"github.com/aretw0/automaton/pkg/adapters/memory"
	"github.com/aretw0/automaton/pkg/adapters/redis"
	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/persistence/middleware"
	"github.com/aretw0/automaton/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the configured definition store, wrapped so that every operation is
// logged and invalid definitions are never persisted.
// The returned closer releases backend connections.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.DefinitionStore, io.Closer, error) {
	store, closer, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	), closer, nil
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.DefinitionStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), nopCloser{}, nil
	case config.StoreFile:
		logger.Debug("using file store", "dir", cfg.StoreDir)
		return file.New(cfg.StoreDir), nopCloser{}, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("using redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// LoadDefinition reads a definition from a .json/.yaml/.yml file, or returns the
// built-in example of that name when no such file exists.
func LoadDefinition(source string) (*domain.Definition, error) {
	if _, err := os.Stat(source); err == nil {
		return codec.ReadFile(source)
	}
	if _, err := catalog.Lookup(source); err == nil {
		return catalog.Get(source)
	}
	if _, err := codec.FormatFromPath(source); err == nil {
		return codec.ReadFile(source)
	}
	return nil, fmt.Errorf("%q is neither a definition file nor a built-in example (available: %v)", source, catalog.Names())
}
