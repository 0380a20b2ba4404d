package ecs

import (
	"errors"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a tick.
// This keeps the entity set fixed while systems run.
type Commands struct {
	spawns   []spawnCommand
	despawns []EntityId
	attaches []attachCommand
	detaches []detachCommand
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type attachCommand struct {
	entity    EntityId
	component any
}

type detachCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// Attach queues a component attach operation.
func (c *Commands) Attach(entity EntityId, component any) {
	c.attaches = append(c.attaches, attachCommand{
		entity:    entity,
		component: component,
	})
}

// Detach queues a component removal operation.
func (c *Commands) Detach(entity EntityId, compType reflect.Type) {
	c.detaches = append(c.detaches, detachCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.despawns)+len(c.attaches)+len(c.detaches)+len(c.defers) > 0
}

// Flush applies all queued commands to the provided storage and resets the
// buffer. Despawns run first; attach and detach operations targeting an
// entity despawned in the same flush are dropped. Every failure is collected
// and returned together.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	despawned := make(map[EntityId]bool)

	for _, id := range c.despawns {
		if despawned[id] {
			continue
		}
		if err := storage.Despawn(id); err != nil {
			errs = append(errs, err)
		}
		despawned[id] = true
	}

	for _, cmd := range c.detaches {
		if despawned[cmd.entity] {
			continue
		}
		if err := storage.Detach(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.attaches {
		if despawned[cmd.entity] {
			continue
		}
		if err := storage.Attach(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		if _, err := storage.Spawn(cmd.components...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.attaches = c.attaches[:0]
	c.detaches = c.detaches[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
