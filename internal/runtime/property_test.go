package runtime_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/automaton/internal/runtime"
	"github.com/aretw0/automaton/pkg/domain"
)

// genDefinition draws a small, structurally valid automaton with a partial transition function.
func genDefinition(t *rapid.T) *domain.Definition {
	n := rapid.IntRange(1, 5).Draw(t, "states")
	k := rapid.IntRange(1, 3).Draw(t, "symbols")

	states := make([]string, n)
	for i := range states {
		states[i] = fmt.Sprintf("q%d", i)
	}
	alphabet := []string{"a", "b", "c"}[:k]
	alphabet = rapid.Permutation(alphabet).Draw(t, "alphabet")

	d := domain.NewDefinition(states, alphabet, rapid.SampledFrom(states).Draw(t, "initial"), nil, nil)
	for _, s := range states {
		if rapid.Bool().Draw(t, "accepting_"+s) {
			d.AddAccepting(s)
		}
		for _, sym := range alphabet {
			if rapid.IntRange(0, 3).Draw(t, "has_"+s+sym) > 0 {
				d.SetTransition(s, sym, rapid.SampledFrom(states).Draw(t, "to_"+s+sym))
			}
		}
	}
	return d
}

func TestProperty_GeneratedDefinitionsValidate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		if err := runtime.Validate(genDefinition(t)); err != nil {
			t.Fatalf("generated definition rejected: %v", err)
		}
	})
}

func TestProperty_BrokenInvariantIsReported(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := genDefinition(t)
		broken := rapid.IntRange(0, 4).Draw(t, "broken")
		src := d.SortedStates()[0]
		var want error
		switch broken {
		case 0:
			d.InitialState = "ghost"
			want = domain.ErrInitialStateNotInStates
		case 1:
			d.AddAccepting("ghost")
			want = domain.ErrAcceptingStatesNotSubset
		case 2:
			d.SetTransition("ghost", d.Alphabet[0], src)
			want = domain.ErrTransitionSourceUnknown
		case 3:
			d.SetTransition(src, "ghost", src)
			want = domain.ErrSymbolNotInAlphabet
		case 4:
			d.SetTransition(src, d.Alphabet[0], "ghost")
			want = domain.ErrTransitionTargetUnknown
		}
		err := runtime.Validate(d)
		if err == nil || !errors.Is(err, want) {
			t.Fatalf("broken invariant %d: got %v, want %v", broken, err, want)
		}
	})
}

func TestProperty_RunIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := genDefinition(t)
		m, err := runtime.Compile(d)
		if err != nil {
			t.Fatal(err)
		}
		input := rapid.SliceOfN(rapid.SampledFrom(d.Alphabet), 0, 12).Draw(t, "input")

		r1, err1 := m.Run(input)
		r2, err2 := m.Run(input)
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected errors: %v, %v", err1, err2)
		}
		if !reflect.DeepEqual(r1, r2) {
			t.Fatalf("runs differ: %+v vs %+v", r1, r2)
		}
		if len(input) == 0 && (len(r1.Trace) != 0 || r1.Accepted != d.IsAccepting(d.InitialState)) {
			t.Fatalf("empty input: trace=%v accepted=%v", r1.Trace, r1.Accepted)
		}
		if len(r1.Trace) > len(input) {
			t.Fatalf("trace longer than input")
		}
	})
}

func TestProperty_EnumerationBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := genDefinition(t)
		m, err := runtime.Compile(d)
		if err != nil {
			t.Fatal(err)
		}
		n := rapid.IntRange(0, 15).Draw(t, "max_results")
		l := rapid.IntRange(0, 6).Draw(t, "max_length")

		got, err := m.Enumerate(n, l)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) > n {
			t.Fatalf("got %d results, cap %d", len(got), n)
		}

		seen := map[string]bool{}
		prev := 0
		for _, w := range got {
			syms := d.Tokenize(w)
			if len(syms) > l {
				t.Fatalf("%q longer than %d", w, l)
			}
			if len(syms) < prev {
				t.Fatalf("length decreased at %q in %v", w, got)
			}
			prev = len(syms)
			if seen[w] {
				t.Fatalf("duplicate %q", w)
			}
			seen[w] = true
			ok, err := m.Accepts(syms)
			if err != nil || !ok {
				t.Fatalf("%q enumerated but not accepted (err=%v)", w, err)
			}
		}
	})
}

func TestProperty_RecordRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := genDefinition(t)
		data, err := json.Marshal(domain.ToRecord(d))
		if err != nil {
			t.Fatal(err)
		}
		var rec domain.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatal(err)
		}
		if got := domain.FromRecord(rec); !d.Equal(got) {
			t.Fatalf("round trip mismatch:\n%s", data)
		}
	})
}
