package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable_LastInsertWins(t *testing.T) {
	d := NewDefinition([]string{"q0", "q1", "q2"}, []string{"a"}, "q0", nil, nil)
	d.SetTransition("q0", "a", "q1")
	d.SetTransition("q0", "a", "q2")

	dst, ok := d.Transitions.Get("q0", "a")
	require.True(t, ok)
	assert.Equal(t, "q2", dst)
	assert.Equal(t, 1, d.Transitions.Len())
}

func TestNewDefinition_Dedup(t *testing.T) {
	d := NewDefinition([]string{"q0", "q0", "q1"}, []string{"b", "a", "b"}, "q0", []string{"q1", "q1"}, nil)

	assert.Len(t, d.States, 2)
	assert.Equal(t, []string{"b", "a"}, d.Alphabet)
	assert.Len(t, d.AcceptingStates, 1)
}

func TestParseFields(t *testing.T) {
	d := ParseFields(RawFields{
		States:    " q0, q1 ,,",
		Alphabet:  "0,1",
		Initial:   " q0 ",
		Accepting: "q1",
		Rows: []TransitionRow{
			{"q0", "0", "q0"},
			{"q0", "1", "q0"},
			{"q0", "1", "q1"}, // replaces the row above
			{"q1", "", "q1"},  // incomplete, skipped
		},
	})

	assert.Equal(t, []string{"q0", "q1"}, d.SortedStates())
	assert.Equal(t, []string{"0", "1"}, d.Alphabet)
	assert.Equal(t, "q0", d.InitialState)
	assert.True(t, d.IsAccepting("q1"))
	assert.Equal(t, 2, d.Transitions.Len())

	dst, _ := d.Transitions.Get("q0", "1")
	assert.Equal(t, "q1", dst)
}

func TestTokenize(t *testing.T) {
	t.Run("Single rune alphabet", func(t *testing.T) {
		d := NewDefinition(nil, []string{"0", "1"}, "", nil, nil)
		assert.Equal(t, []string{"1", "1", "0"}, d.Tokenize(" 110 "))
		assert.Empty(t, d.Tokenize(""))
	})

	t.Run("Multi rune alphabet", func(t *testing.T) {
		d := NewDefinition(nil, []string{"go", "stop"}, "", nil, nil)
		assert.Equal(t, []string{"go", "stop", "go"}, d.Tokenize("go, stop go"))
	})
}

func TestRecord_RoundTrip(t *testing.T) {
	d := NewDefinition(
		[]string{"q1", "q0"},
		[]string{"1", "0"},
		"q0",
		[]string{"q1"},
		map[string]map[string]string{"q0": {"1": "q1"}, "q1": {"0": "q1"}},
	)

	data, err := json.Marshal(ToRecord(d))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))

	got := FromRecord(rec)
	assert.True(t, d.Equal(got), "round trip should preserve the definition")
	assert.Equal(t, []string{"1", "0"}, got.Alphabet, "alphabet order is significant")
}

func TestRecord_MissingFields(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"states":["q0"]}`), &rec))

	d := FromRecord(rec)
	assert.Equal(t, "", d.InitialState)
	assert.Empty(t, d.Alphabet)
	assert.Empty(t, d.AcceptingStates)
	assert.Equal(t, 0, d.Transitions.Len())

	out := ToRecord(d)
	assert.Nil(t, out.InitialState)
}

func TestErrors_Taxonomy(t *testing.T) {
	defErr := error(&DefinitionError{Kind: KindSymbolNotInAlphabet, State: "q0", Symbol: "x"})
	inErr := error(&InputError{Position: 2, Symbol: "x"})

	assert.ErrorIs(t, defErr, ErrSymbolNotInAlphabet)
	assert.ErrorIs(t, inErr, ErrSymbolNotInAlphabet)

	var de *DefinitionError
	assert.False(t, errors.As(inErr, &de))
	var ie *InputError
	assert.False(t, errors.As(defErr, &ie))

	target := &DefinitionError{Kind: KindTransitionTargetUnknown, State: "q0", Symbol: "a", Target: "qx"}
	assert.ErrorIs(t, target, ErrTransitionTargetUnknown)
	assert.Contains(t, target.Error(), "qx")
}

func TestResult_Explain(t *testing.T) {
	to := "q1"
	r := &Result{
		Input:      []string{"1"},
		Trace:      Trace{{Position: 1, From: "q0", Symbol: "1", To: &to}},
		Accepted:   true,
		FinalState: "q1",
	}
	out := r.Explain()
	assert.Contains(t, out, "1. from (q0) on '1' -> (q1)")
	assert.Contains(t, out, "final state: (q1)")
	assert.Contains(t, out, "ACCEPTED")

	stalled := &Result{
		Input: []string{"0"},
		Trace: Trace{{Position: 1, From: "q0", Symbol: "0"}},
	}
	assert.True(t, stalled.Stalled())
	assert.Contains(t, stalled.Explain(), "no transition")
	assert.NotContains(t, stalled.Explain(), "final state")
}
