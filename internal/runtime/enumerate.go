package runtime

import (
	"github.com/aretw0/automaton/pkg/domain"
)

// config is one frontier entry: a state and the symbols read to get there.
type config struct {
	state int
	word  string
	depth int // number of symbols in word
}

type visitKey struct {
	state int
	word  string
}

// Enumerate returns up to maxResults distinct accepted strings, shortest first.
//
// The search is breadth-first over (state, string) configurations seeded with the
// initial state and the empty string. Children are enqueued in alphabet order, so
// results come out by non-decreasing length and, within a length, in alphabet order.
// Strings longer than maxLength symbols are never produced. Configurations whose state
// cannot reach an accepting state are not expanded; they could never contribute a result.
func (m *Machine) Enumerate(maxResults, maxLength int) ([]string, error) {
	if maxResults < 0 || maxLength < 0 {
		return nil, domain.ErrInvalidLimits
	}

	results := make([]string, 0, min(maxResults, 64))
	if maxResults == 0 || m.initial == absent {
		return results, nil
	}

	live := m.live()
	if !live[m.initial] {
		return results, nil
	}

	found := make(map[string]struct{}, len(results))
	visited := make(map[visitKey]struct{})
	queue := []config{{state: m.initial}}

	for head := 0; head < len(queue); head++ {
		c := queue[head]
		queue[head] = config{}

		key := visitKey{state: c.state, word: c.word}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		if m.accepting[c.state] {
			if _, dup := found[c.word]; !dup {
				found[c.word] = struct{}{}
				results = append(results, c.word)
				if len(results) >= maxResults {
					break
				}
			}
		}

		if c.depth >= maxLength {
			continue
		}

		for sym, name := range m.symbols {
			n := m.next(c.state, sym)
			if n == absent || !live[n] {
				continue
			}
			queue = append(queue, config{state: n, word: c.word + name, depth: c.depth + 1})
		}
	}

	return results, nil
}

