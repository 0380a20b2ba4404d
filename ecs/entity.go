package ecs

// EntityId identifies an entity within a Storage. Ids are handed out in
// ascending order starting at 1 and are never reused, so zero always means
// "no entity".
type EntityId uint32

// Index returns the arena slot backing the entity.
func (e EntityId) Index() int {
	return int(e)
}

// Valid reports whether the id could refer to an allocated entity.
func (e EntityId) Valid() bool {
	return e != 0
}
