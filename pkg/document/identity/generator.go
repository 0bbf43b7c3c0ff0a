// Package identity generates block identifiers.
//
// Two modes are supported. Random identifiers are lower-cased ULIDs and are
// used for fresh blocks. Seeded identifiers are derived from a seed and a
// counter so that the same seed always yields the same sequence; they are
// used for fixtures and for replaying clone operations from history.
package identity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/stateful/blockdoc/internal/ulid"
)

// Prefix marks a string as a block identifier.
const Prefix = "block-"

// namespace is the UUIDv5 namespace for seeded identifiers.
var namespace = uuid.MustParse("6c3b8d6e-5f0e-4a41-9d4b-0e1f6a7c2b90")

// Generator produces block identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to [Generator].
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

type randomGenerator struct{}

// NewRandomGenerator returns a generator of 128-bit random identifiers.
func NewRandomGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) NewID() string {
	return Prefix + strings.ToLower(ulid.GenerateID())
}

// SeededGenerator produces a deterministic sequence of identifiers.
// It is not safe for concurrent use.
type SeededGenerator struct {
	seed    string
	counter uint64
}

// NewSeededGenerator creates a generator whose sequence depends only on seed.
func NewSeededGenerator(seed string) *SeededGenerator {
	return &SeededGenerator{seed: seed}
}

func (g *SeededGenerator) NewID() string {
	g.counter++
	name := g.seed + ":" + strconv.FormatUint(g.counter, 10)
	return Prefix + uuid.NewSHA1(namespace, []byte(name)).String()
}

// ExclusiveGenerator skips identifiers which are already taken. It keeps
// ids generated in a tree unique even when the underlying sequence
// restarts, for example a seeded generator in a new session.
// The wrapped generator must not repeat itself forever.
type ExclusiveGenerator struct {
	gen   Generator
	taken map[string]struct{}
}

// NewExclusiveGenerator wraps gen so that it never returns one of taken
// nor an identifier it returned before.
func NewExclusiveGenerator(gen Generator, taken []string) *ExclusiveGenerator {
	g := &ExclusiveGenerator{gen: gen, taken: make(map[string]struct{}, len(taken))}
	for _, id := range taken {
		g.taken[id] = struct{}{}
	}
	return g
}

func (g *ExclusiveGenerator) NewID() string {
	for {
		id := g.gen.NewID()
		if _, ok := g.taken[id]; !ok {
			g.taken[id] = struct{}{}
			return id
		}
	}
}

// IsBlockID reports whether s looks like an identifier produced by this package.
func IsBlockID(s string) bool {
	rest, ok := strings.CutPrefix(s, Prefix)
	if !ok {
		return false
	}
	if ulid.ValidID(rest) {
		return true
	}
	_, err := uuid.Parse(rest)
	return err == nil && len(rest) == 36
}
