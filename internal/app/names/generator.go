// Package names produces display name candidates from adjective and noun lists.
package names

import (
	"errors"
	"math/rand/v2"
	"sync"
)

const (
	MinCombinedLen = 8
	MaxCombinedLen = 18
)

var ErrNoCandidates = errors.New("names: no adjective+noun pair fits the length range")

// Generator tours the adjective x noun product. The adjective cursor starts
// at a random offset; the noun list is walked from a shuffled set of start
// offsets, moving to the next offset every full adjective cycle, so the
// tour covers the whole product before it repeats.
type Generator struct {
	mu sync.Mutex

	adjectives []string
	nouns      []string

	adjIdx      int
	adjOffset   int
	nounIdx     int
	offsetIdx   int
	nounOffsets []int
}

// NewGenerator builds a generator over the given lists. A nil src draws its
// seeds from the process-wide random source.
func NewGenerator(adjectives, nouns []string, src rand.Source) (*Generator, error) {
	if !anyFits(adjectives, nouns) {
		return nil, ErrNoCandidates
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)

	offsets := make([]int, len(nouns))
	for i := range offsets {
		offsets[i] = i
	}
	rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })

	return &Generator{
		adjectives:  adjectives,
		nouns:       nouns,
		adjOffset:   rng.IntN(len(adjectives)),
		nounOffsets: offsets,
	}, nil
}

// NewDefaultGenerator uses the built-in word lists.
func NewDefaultGenerator() *Generator {
	g, err := NewGenerator(Adjectives, Nouns, nil)
	if err != nil {
		panic(err)
	}
	return g
}

// Next returns the next candidate in the tour.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		adj := g.adjectives[(g.adjIdx+g.adjOffset)%len(g.adjectives)]
		noun := g.nouns[(g.nounIdx+g.nounOffsets[g.offsetIdx])%len(g.nouns)]

		g.adjIdx = (g.adjIdx + 1) % len(g.adjectives)
		g.nounIdx = (g.nounIdx + 1) % len(g.nouns)
		if g.adjIdx == 0 {
			g.nounIdx = 0
			g.offsetIdx = (g.offsetIdx + 1) % len(g.nounOffsets)
		}

		if n := len(adj) + len(noun); n >= MinCombinedLen && n <= MaxCombinedLen {
			return adj + noun
		}
	}
}

func anyFits(adjectives, nouns []string) bool {
	for _, a := range adjectives {
		for _, n := range nouns {
			if l := len(a) + len(n); l >= MinCombinedLen && l <= MaxCombinedLen {
				return true
			}
		}
	}
	return false
}
