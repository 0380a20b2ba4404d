package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
)

func TestRegisterComponent(t *testing.T) {
	t.Run("same type twice is a no-op", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		require.NoError(t, ecs.RegisterComponent[Position](registry))
		require.NoError(t, ecs.RegisterComponent[Position](registry))
		assert.Equal(t, []reflect.Type{reflect.TypeFor[Position]()}, registry.Kinds())
	})

	t.Run("kinds keep registration order", func(t *testing.T) {
		registry := newTestRegistry(t)
		kinds := registry.Kinds()
		require.Len(t, kinds, 8)
		assert.Equal(t, reflect.TypeFor[Position](), kinds[0])
		assert.Equal(t, reflect.TypeFor[Inventory](), kinds[7])
	})

	t.Run("rejects reference kinds", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		err := ecs.RegisterComponent[*Position](registry)
		assert.True(t, errors.Is(err, ecs.ErrInvalidComponent))
		err = ecs.RegisterComponent[map[string]int](registry)
		assert.True(t, errors.Is(err, ecs.ErrInvalidComponent))
		err = ecs.RegisterComponent[func()](registry)
		assert.True(t, errors.Is(err, ecs.ErrInvalidComponent))
		assert.Empty(t, registry.Kinds())
	})

	t.Run("new kinds may follow spawned entities", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		require.NoError(t, ecs.RegisterComponent[Position](registry))
		storage := ecs.NewStorage(registry)
		id := mustSpawn(t, storage, Position{X: 1})

		require.NoError(t, ecs.RegisterComponent[Velocity](registry))
		require.NoError(t, storage.Attach(id, Velocity{DX: 2}))
		assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	})
}

func TestRegisteredReportsMembership(t *testing.T) {
	registry := newTestRegistry(t)
	assert.True(t, registry.Registered(reflect.TypeFor[Health]()))
	assert.False(t, registry.Registered(reflect.TypeFor[float64]()))
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := newTestStorage(t)
	first := mustSpawn(t, storage, Position{X: 1, Y: 1})
	ptr := ecs.MutableComponent[Position](storage, first)
	require.NotNil(t, ptr)

	for i := 0; i < 500; i++ {
		mustSpawn(t, storage, Position{X: float32(i)})
	}

	ptr.X = 42
	pos, ok := ecs.ReadComponent[Position](storage, first)
	require.True(t, ok)
	assert.Equal(t, float32(42), pos.X)
}

func registerPosition(registry *ecs.ComponentRegistry) error {
	return ecs.RegisterComponent[Position](registry)
}

func TestKindShapeMismatch(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	require.NoError(t, registerPosition(registry))

	// Same kind name as the package-level Position, different layout.
	type Position struct {
		X, Y, Z float64
	}

	require.NoError(t, ecs.RegisterComponent[Position](registry), "empty registry accepts the new shape")
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position]()}, registry.Kinds())

	storage := ecs.NewStorage(registry)
	mustSpawn(t, storage, Position{X: 1, Y: 2, Z: 3})

	err := registerPosition(registry)
	assert.True(t, errors.Is(err, ecs.ErrKindShapeMismatch))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position]()}, registry.Kinds())
}
