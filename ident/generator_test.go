package ident

import (
	"errors"
	"testing"

	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericGenerator_Generate(t *testing.T) {
	t.Run("stays inside the default range", func(t *testing.T) {
		g := NewNumericGenerator()
		exclude := NewSet()

		for i := 0; i < 100; i++ {
			id, err := g.Generate(exclude)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, int64(id), int64(DefaultMin))
			assert.LessOrEqual(t, int64(id), int64(DefaultMax))
			exclude.Add(id)
		}
	})

	t.Run("never returns an excluded identifier", func(t *testing.T) {
		// A two-value range with one value excluded must always yield
		// the other.
		g := NewNumericGenerator(WithRange(100, 101))
		exclude := NewSet(100)

		for i := 0; i < 20; i++ {
			id, err := g.Generate(exclude)
			require.NoError(t, err)
			assert.Equal(t, coco.ModuleID(101), id)
		}
	})

	t.Run("accumulated exclusions guarantee run-local uniqueness", func(t *testing.T) {
		g := NewNumericGenerator(WithRange(1, 50))
		exclude := NewSet()
		seen := NewSet()

		for i := 0; i < 50; i++ {
			id, err := g.Generate(exclude)
			require.NoError(t, err)
			assert.False(t, seen.Has(id), "identifier %d returned twice", id)
			seen.Add(id)
			exclude.Add(id)
		}
		assert.Equal(t, 50, seen.Len())
	})

	t.Run("exhaustion surfaces ErrSpaceExhausted", func(t *testing.T) {
		g := NewNumericGenerator(WithRange(1, 3), WithMaxAttempts(25))
		exclude := NewSet(1, 2, 3)

		_, err := g.Generate(exclude)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSpaceExhausted))
	})

	t.Run("injected rand source is used", func(t *testing.T) {
		calls := 0
		g := NewNumericGenerator(WithRand(func(n int64) int64 {
			calls++
			return 0
		}))

		id, err := g.Generate(NewSet())
		require.NoError(t, err)
		assert.Equal(t, coco.ModuleID(DefaultMin), id)
		assert.Equal(t, 1, calls)
	})
}

func TestSet(t *testing.T) {
	s := NewSet(1, 2)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(3))

	s.Add(3)
	assert.True(t, s.Has(3))
	assert.Equal(t, 3, s.Len())

	clone := s.Clone()
	clone.Add(4)
	assert.False(t, s.Has(4), "Clone must be independent of the original")

	s.Union(NewSet(5, 6))
	assert.True(t, s.Has(5))
	assert.True(t, s.Has(6))

	assert.ElementsMatch(t, []coco.ModuleID{1, 2, 3, 5, 6}, s.IDs())
}

func TestMap(t *testing.T) {
	m := NewMap()
	assert.Equal(t, 0, m.Len())

	m.Record(10, 100)
	m.Record(20, 200)
	m.Record(30, 300)

	newID, ok := m.Lookup(20)
	require.True(t, ok)
	assert.Equal(t, coco.ModuleID(200), newID)

	_, ok = m.Lookup(99)
	assert.False(t, ok)

	assert.Equal(t, []coco.ModuleID{10, 20, 30}, m.OldIDs())
	assert.Equal(t, []coco.ModuleID{100, 200, 300}, m.NewIDs())

	pairs := m.Pairs()
	assert.Equal(t, coco.ModuleID(300), pairs[30])

	// Re-recording keeps the original position.
	m.Record(10, 111)
	assert.Equal(t, []coco.ModuleID{10, 20, 30}, m.OldIDs())
	newID, _ = m.Lookup(10)
	assert.Equal(t, coco.ModuleID(111), newID)
}
