package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/domain"
)

func TestEnumerate_AtLeastOneOne(t *testing.T) {
	got, err := compile(t, atLeastOneOne()).Enumerate(3, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "01", "10"}, got)
}

func TestEnumerate_Parity(t *testing.T) {
	got, err := compile(t, parity()).Enumerate(6, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0", "00", "11", "000", "011"}, got)
}

func TestEnumerate_AlphabetOrderBreaksTies(t *testing.T) {
	d := atLeastOneOne()
	d.Alphabet = []string{"1", "0"}

	got, err := compile(t, d).Enumerate(4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "11", "10", "01"}, got)
}

func TestEnumerate_Bounds(t *testing.T) {
	m := compile(t, atLeastOneOne())

	t.Run("Max Length Cuts Off", func(t *testing.T) {
		got, err := m.Enumerate(100, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "01", "10", "11"}, got)
	})

	t.Run("Zero Results", func(t *testing.T) {
		got, err := m.Enumerate(0, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Zero Length", func(t *testing.T) {
		got, err := compile(t, parity()).Enumerate(5, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{""}, got)
	})

	t.Run("Negative Limits", func(t *testing.T) {
		_, err := m.Enumerate(-1, 3)
		assert.ErrorIs(t, err, domain.ErrInvalidLimits)
		_, err = m.Enumerate(3, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidLimits)
	})
}

func TestEnumerate_EmptyLanguage(t *testing.T) {
	tests := []struct {
		name string
		def  *domain.Definition
	}{
		{"No Accepting States", domain.NewDefinition([]string{"q0"}, []string{"a"}, "q0", nil,
			map[string]map[string]string{"q0": {"a": "q0"}})},
		{"Accepting Unreachable", domain.NewDefinition([]string{"q0", "q1"}, []string{"a"}, "q0", []string{"q1"},
			map[string]map[string]string{"q0": {"a": "q0"}})},
		{"No Initial State", domain.NewDefinition([]string{"q0"}, []string{"a"}, "", []string{"q0"}, nil)},
		{"Empty Automaton", domain.NewDefinition(nil, nil, "", nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compile(t, tt.def).Enumerate(10, 20)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestEnumerate_FiniteLanguage(t *testing.T) {
	// Accepts exactly "ab" and "b".
	d := domain.NewDefinition([]string{"s", "a", "f"}, []string{"a", "b"}, "s", []string{"f"},
		map[string]map[string]string{"s": {"a": "a", "b": "f"}, "a": {"b": "f"}})

	got, err := compile(t, d).Enumerate(10, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "ab"}, got)
}

func TestEnumerate_MultiRuneSymbols(t *testing.T) {
	d := domain.NewDefinition([]string{"red", "green"}, []string{"go", "stop"}, "red", []string{"green"},
		map[string]map[string]string{"red": {"go": "green"}, "green": {"stop": "red"}})

	got, err := compile(t, d).Enumerate(3, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "gostopgo", "gostopgostopgo"}, got)
}

func TestEnumerate_ResultsAreAccepted(t *testing.T) {
	d := parity()
	m := compile(t, d)

	got, err := m.Enumerate(20, 8)
	require.NoError(t, err)
	for _, w := range got {
		ok, err := m.Accepts(d.Tokenize(w))
		require.NoError(t, err)
		assert.True(t, ok, "%q should be accepted", w)
	}
}

func BenchmarkEnumerate_Parity(b *testing.B) {
	m, err := runtime.Compile(parity())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Enumerate(10, 20)
	}
}
