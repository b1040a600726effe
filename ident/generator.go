package ident

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dszilagyiques/CloneCoCo/coco"
)

// ErrSpaceExhausted indicates the generator could not find a non-colliding
// identifier within its attempt budget. The exclusion set has grown too close
// to the size of the identifier space.
var ErrSpaceExhausted = errors.New("identifier space exhausted")

// Generator produces new module identifiers disjoint from an exclusion set.
type Generator interface {
	// Generate returns an identifier not present in exclude. Callers must
	// add each returned identifier to exclude before the next call to
	// guarantee run-local uniqueness.
	Generate(exclude Set) (coco.ModuleID, error)
}

// Default bounds of the backend's module identifier space: six-digit
// integers, matching the identifiers found in server documents.
const (
	DefaultMin = 100000
	DefaultMax = 999999
)

// DefaultMaxAttempts bounds the rejection loop before a generation call
// fails with ErrSpaceExhausted.
const DefaultMaxAttempts = 10000

// NumericGenerator draws uniform random identifiers from a fixed integer
// range, rejecting collisions with the supplied exclusion set. It keeps no
// state between calls; the accumulating exclusion set belongs to the caller.
type NumericGenerator struct {
	min         coco.ModuleID
	max         coco.ModuleID
	maxAttempts int
	intn        func(n int64) int64
}

// NumericOption configures a NumericGenerator.
type NumericOption func(*NumericGenerator)

// WithRange sets the inclusive identifier range to draw from.
func WithRange(min, max coco.ModuleID) NumericOption {
	return func(g *NumericGenerator) {
		g.min = min
		g.max = max
	}
}

// WithMaxAttempts sets the rejection budget before ErrSpaceExhausted.
func WithMaxAttempts(n int) NumericOption {
	return func(g *NumericGenerator) {
		g.maxAttempts = n
	}
}

// WithRand sets the random source. Tests inject a deterministic source here;
// the default is the shared math/rand generator.
func WithRand(intn func(n int64) int64) NumericOption {
	return func(g *NumericGenerator) {
		g.intn = intn
	}
}

// NewNumericGenerator creates a generator over the backend's six-digit
// identifier space.
func NewNumericGenerator(opts ...NumericOption) *NumericGenerator {
	g := &NumericGenerator{
		min:         DefaultMin,
		max:         DefaultMax,
		maxAttempts: DefaultMaxAttempts,
		intn:        rand.Int63n,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh identifier outside exclude, or ErrSpaceExhausted
// once the attempt budget is spent.
func (g *NumericGenerator) Generate(exclude Set) (coco.ModuleID, error) {
	span := int64(g.max-g.min) + 1
	if span <= 0 {
		return 0, fmt.Errorf("invalid identifier range [%d, %d]", g.min, g.max)
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate := g.min + coco.ModuleID(g.intn(span))
		if exclude.Has(candidate) {
			continue
		}
		return candidate, nil
	}

	return 0, fmt.Errorf("no free identifier in [%d, %d] after %d attempts: %w",
		g.min, g.max, g.maxAttempts, ErrSpaceExhausted)
}
