package ecs

import (
	"iter"
	"unsafe"
)

// Query wraps a View with a per-tick snapshot. Execute collects matching
// entities and their component pointers once; Iter and Values replay that
// snapshot in ascending entity id order.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) (*Query[T], error) {
	q := &Query[T]{}
	if err := q.Init(storage); err != nil {
		return nil, err
	}
	return q, nil
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) error {
	view, err := NewView[T](storage)
	if err != nil {
		return err
	}
	q.view = view
	q.storage = storage
	q.cacheValid = false
	return nil
}

// Execute builds the entity and component caches for this tick.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.storage.collect(q.view.required, q.cachedEntities[:0])
	q.cachedComponents = q.cachedComponents[:0]

	storages := q.view.storagesFor()

	var result T
	resultPtr := unsafe.Pointer(&result)

	n := 0
	for _, id := range q.cachedEntities {
		if !q.view.populate(resultPtr, id, storages) {
			continue
		}
		q.cachedEntities[n] = id
		q.cachedComponents = append(q.cachedComponents, result)
		n++
	}
	q.cachedEntities = q.cachedEntities[:n]

	q.cacheValid = true
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
