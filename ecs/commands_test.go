package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
)

// commandSystem runs fn with the frame's command buffer.
type commandSystem struct {
	fn func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.fn(frame)
}

func TestCommandsAreDeferredUntilTickEnd(t *testing.T) {
	storage := newTestStorage(t)
	scheduler := ecs.NewScheduler(storage)
	victim := mustSpawn(t, storage, Position{})

	var countDuringTick int
	require.NoError(t, scheduler.Register(&commandSystem{fn: func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Position{X: 5})
		frame.Commands.Despawn(victim)
		countDuringTick = frame.Storage.EntityCount()
	}}))
	require.NoError(t, scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		assert.True(t, frame.Storage.Alive(victim), "later systems still see the entity")
		assert.True(t, frame.Commands.Pending())
	})))

	require.NoError(t, scheduler.Once(0.1))

	assert.Equal(t, 1, countDuringTick)
	assert.False(t, storage.Alive(victim))
	assert.Equal(t, 1, storage.EntityCount())
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := newTestStorage(t)
	a := mustSpawn(t, storage, Position{})
	b := mustSpawn(t, storage, Position{}, Velocity{})

	var commands ecs.Commands
	commands.Attach(a, Health{Current: 3})
	commands.Despawn(a)
	commands.Detach(b, reflect.TypeFor[Velocity]())
	commands.Attach(b, Name{Value: "b"})

	var deferred []string
	commands.Defer(func() { deferred = append(deferred, "first") })
	commands.Defer(func() { deferred = append(deferred, "second") })

	require.NoError(t, commands.Flush(storage), "attach to an entity despawned in the same flush is dropped")

	assert.False(t, storage.Alive(a))
	assert.False(t, storage.HasComponent(b, reflect.TypeFor[Velocity]()))
	assert.True(t, storage.HasComponent(b, reflect.TypeFor[Name]()))
	assert.Equal(t, []string{"first", "second"}, deferred)
	assert.False(t, commands.Pending())
}

func TestCommandsFlushCollectsErrors(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Position{})

	var commands ecs.Commands
	commands.Despawn(ecs.EntityId(77))
	commands.Attach(id, float64(1))
	commands.Spawn(Position{X: 1})

	err := commands.Flush(storage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity))
	assert.True(t, errors.Is(err, ecs.ErrUnregisteredKind))
	assert.Equal(t, 2, storage.EntityCount(), "valid commands still apply")
}

func TestSchedulerReturnsFlushErrors(t *testing.T) {
	storage := newTestStorage(t)
	scheduler := ecs.NewScheduler(storage)
	require.NoError(t, scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Despawn(ecs.EntityId(1000))
	})))

	err := scheduler.Once(0.1)
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity))
}
