package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/domain"
)

func parity() *domain.Definition {
	return domain.NewDefinition(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		"q0",
		[]string{"q0"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q0"},
		},
	)
}

func atLeastOneOne() *domain.Definition {
	return domain.NewDefinition(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		"q0",
		[]string{"q1"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q1"},
		},
	)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Definition)
		kind   domain.ErrorKind
		is     error
	}{
		{
			name:   "Initial State Unknown",
			mutate: func(d *domain.Definition) { d.InitialState = "qx" },
			kind:   domain.KindInitialStateNotInStates,
			is:     domain.ErrInitialStateNotInStates,
		},
		{
			name:   "Accepting Not Subset",
			mutate: func(d *domain.Definition) { d.AddAccepting("qx") },
			kind:   domain.KindAcceptingStatesNotSubset,
			is:     domain.ErrAcceptingStatesNotSubset,
		},
		{
			name:   "Transition Source Unknown",
			mutate: func(d *domain.Definition) { d.SetTransition("qx", "0", "q0") },
			kind:   domain.KindTransitionSourceUnknown,
			is:     domain.ErrTransitionSourceUnknown,
		},
		{
			name:   "Transition Symbol Unknown",
			mutate: func(d *domain.Definition) { d.SetTransition("q0", "2", "q0") },
			kind:   domain.KindSymbolNotInAlphabet,
			is:     domain.ErrSymbolNotInAlphabet,
		},
		{
			name:   "Transition Target Unknown",
			mutate: func(d *domain.Definition) { d.SetTransition("q1", "0", "qx") },
			kind:   domain.KindTransitionTargetUnknown,
			is:     domain.ErrTransitionTargetUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parity()
			tt.mutate(d)

			err := runtime.Validate(d)
			require.Error(t, err)

			var defErr *domain.DefinitionError
			require.ErrorAs(t, err, &defErr)
			assert.Equal(t, tt.kind, defErr.Kind)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, runtime.Validate(parity()))
	assert.NoError(t, runtime.Validate(atLeastOneOne()))
}

func TestValidate_EmptyAutomaton(t *testing.T) {
	assert.NoError(t, runtime.Validate(domain.NewDefinition(nil, nil, "", nil, nil)))
	assert.NoError(t, runtime.Validate(&domain.Definition{}))
}

func TestValidate_KindPrecedence(t *testing.T) {
	// A definition broken in every way reports the earliest kind first.
	d := parity()
	d.SetTransition("q1", "0", "qx")
	d.SetTransition("q0", "9", "q0")
	d.SetTransition("zz", "0", "q0")
	d.AddAccepting("qa")
	d.InitialState = "qi"

	order := []domain.ErrorKind{
		domain.KindInitialStateNotInStates,
		domain.KindAcceptingStatesNotSubset,
		domain.KindTransitionSourceUnknown,
		domain.KindSymbolNotInAlphabet,
		domain.KindTransitionTargetUnknown,
	}
	fixes := []func(){
		func() { d.InitialState = "q0" },
		func() { delete(d.AcceptingStates, "qa") },
		func() { delete(d.Transitions, "zz") },
		func() { delete(d.Transitions["q0"], "9") },
		func() { d.SetTransition("q1", "0", "q1") },
	}

	for i, kind := range order {
		var defErr *domain.DefinitionError
		require.True(t, errors.As(runtime.Validate(d), &defErr), "step %d", i)
		assert.Equal(t, kind, defErr.Kind)
		fixes[i]()
	}
	assert.NoError(t, runtime.Validate(d))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	d := parity()
	d.AddAccepting("qx")
	before := d.Clone()

	_ = runtime.Validate(d)
	assert.True(t, before.Equal(d))
}

func TestCompile_RejectsInvalid(t *testing.T) {
	d := parity()
	d.AddAccepting("qx")

	m, err := runtime.Compile(d)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrAcceptingStatesNotSubset)
}

func TestMachine_Reachable(t *testing.T) {
	d := parity()
	d.AddState("orphan")

	m, err := runtime.Compile(d)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumStates())
	assert.Equal(t, []string{"q0", "q1"}, m.Reachable())
	assert.Equal(t, []string{"0", "1"}, m.Alphabet())
}
