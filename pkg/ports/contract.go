package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automaton/pkg/domain"
)

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore
// implementation adheres to the interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func() *domain.Definition {
		return domain.NewDefinition(
			[]string{"q0", "q1"},
			[]string{"1", "0"},
			"q0",
			[]string{"q1"},
			map[string]map[string]string{"q0": {"1": "q1"}, "q1": {"0": "q1", "1": "q1"}},
		)
	}

	t.Run("Save and Load", func(t *testing.T) {
		def := sample()
		require.NoError(t, store.Save(ctx, name, def), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, def.Equal(loaded), "loaded definition should match the saved one")
		assert.Equal(t, []string{"1", "0"}, loaded.Alphabet, "alphabet order must survive storage")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		def := sample()
		def.AddAccepting("q0")
		require.NoError(t, store.Save(ctx, name, def))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, loaded.IsAccepting("q0"))
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		def := sample()
		require.NoError(t, store.Save(ctx, name, def))
		def.AddState("mutated")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.False(t, loaded.HasState("mutated"))
	})

	t.Run("Invalid Definitions Are Stored As Is", func(t *testing.T) {
		def := sample()
		def.InitialState = "ghost"
		require.NoError(t, store.Save(ctx, name+"-invalid", def))
		defer func() { _ = store.Delete(ctx, name+"-invalid") }()

		loaded, err := store.Load(ctx, name+"-invalid")
		require.NoError(t, err)
		assert.Equal(t, "ghost", loaded.InitialState)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample()))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "Load after Delete should return ErrDefinitionNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, sample()))
		require.NoError(t, store.Save(ctx, id2, sample()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
