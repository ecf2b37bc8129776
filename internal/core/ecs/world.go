package ecs

// World owns the entity pool, the component registry and the deferred
// destruction queue. Entities marked for destruction stop reporting Alive
// at once; their slots and components are released by FlushDestroyQueue,
// which CleanupSystem calls at the end of every tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	pending      map[EntityID]struct{}
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		pending:      make(map[EntityID]struct{}, 16),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	if _, queued := w.pending[id]; queued {
		return false
	}
	return w.pool.Alive(id)
}

// MarkForDestruction queues a live entity for end-of-tick cleanup and
// reports whether it was queued. Marking twice, or marking a dead entity,
// is a no-op.
func (w *World) MarkForDestruction(id EntityID) bool {
	if !w.Alive(id) {
		return false
	}
	w.pending[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
	return true
}

// PendingDestruction returns the number of entities waiting for the next flush.
func (w *World) PendingDestruction() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue releases every queued entity and its components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		delete(w.pending, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
