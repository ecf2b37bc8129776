package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDPacking(t *testing.T) {
	id := NewEntityID(7, 3)
	assert.Equal(t, uint32(7), id.Index())
	assert.Equal(t, uint32(3), id.Generation())
	assert.False(t, id.IsZero())
	assert.True(t, EntityID(0).IsZero())
}

func TestPoolNeverHandsOutZero(t *testing.T) {
	p := NewEntityPool()
	id := p.Create()
	assert.False(t, id.IsZero())
	assert.False(t, p.Alive(0))
}

func TestPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	first := p.Create()
	p.Destroy(first)

	second := p.Create()

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.False(t, p.Alive(first))
	assert.True(t, p.Alive(second))

	p.Destroy(first) // stale, ignored
	assert.True(t, p.Alive(second))
}

type tag struct{ name string }
type weight struct{ kg float64 }

func TestMarkForDestructionIsDeferredButInvisible(t *testing.T) {
	w := NewWorld()
	tags := NewPtrComponentStore[tag]()
	w.Registry().Register(tags)

	id := w.CreateEntity()
	tags.Set(id, &tag{"a"})

	require.True(t, w.MarkForDestruction(id))
	assert.False(t, w.MarkForDestruction(id), "second mark is a no-op")
	assert.False(t, w.Alive(id))
	_, ok := tags.Get(id)
	assert.True(t, ok, "components live until the flush")
	assert.Equal(t, 1, w.PendingDestruction())

	w.FlushDestroyQueue()

	_, ok = tags.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, w.PendingDestruction())
	assert.False(t, w.Alive(id))

	next := w.CreateEntity()
	assert.Equal(t, id.Index(), next.Index())
	assert.True(t, w.Alive(next))
}

func TestEach2JoinsStores(t *testing.T) {
	tags := NewPtrComponentStore[tag]()
	weights := NewPtrComponentStore[weight]()
	a, b, c := NewEntityID(1, 0), NewEntityID(2, 0), NewEntityID(3, 0)
	tags.Set(a, &tag{"a"})
	tags.Set(b, &tag{"b"})
	tags.Set(c, &tag{"c"})
	weights.Set(b, &weight{2})
	weights.Set(c, &weight{3})

	got := map[string]float64{}
	Each2(tags, weights, func(_ EntityID, tg *tag, wt *weight) {
		got[tg.name] = wt.kg
	})

	assert.Equal(t, map[string]float64{"b": 2, "c": 3}, got)
}
