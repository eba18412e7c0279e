package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/catalog"
)

func TestCatalog_AllValid(t *testing.T) {
	require.Len(t, catalog.Names(), 4)
	for _, e := range catalog.Entries() {
		t.Run(e.Name, func(t *testing.T) {
			assert.NotEmpty(t, e.Description)
			assert.NoError(t, runtime.Validate(e.Definition()))
		})
	}
}

func TestCatalog_Languages(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{catalog.EvenOnes, []string{"", "0", "00"}},
		{catalog.EndsIn01, []string{"01", "001", "101"}},
		{catalog.OnlyZeros, []string{"", "0", "00"}},
		{catalog.AtLeastOneOne, []string{"1", "01", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := catalog.Get(tt.name)
			require.NoError(t, err)
			m, err := runtime.Compile(d)
			require.NoError(t, err)

			got, err := m.Enumerate(3, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	d, err := catalog.Get(catalog.EvenOnes)
	require.NoError(t, err)
	d.AddState("mutated")
	d.SetTransition("q0", "1", "q0")

	fresh, err := catalog.Get(catalog.EvenOnes)
	require.NoError(t, err)
	assert.False(t, fresh.HasState("mutated"))
	dst, _ := fresh.Transitions.Get("q0", "1")
	assert.Equal(t, "q1", dst)
}

func TestCatalog_Unknown(t *testing.T) {
	_, err := catalog.Get("nope")
	assert.ErrorContains(t, err, "unknown example")
}
