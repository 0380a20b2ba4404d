package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
)

func TestSpawnEntity(t *testing.T) {
	storage := newTestStorage(t)

	first := mustSpawn(t, storage, &Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	second := mustSpawn(t, storage)

	assert.True(t, first.Valid())
	assert.Less(t, first, second, "ids ascend")
	assert.Equal(t, 2, storage.EntityCount())
	assert.True(t, storage.Alive(second))
	assert.Empty(t, storage.KindsOf(second))
}

func TestSpawnUnregisteredKind(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Spawn(Position{}, float64(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ecs.ErrUnregisteredKind))
	assert.Equal(t, 0, storage.EntityCount(), "failed spawn allocates nothing")

	id := mustSpawn(t, storage, Position{})
	assert.Equal(t, ecs.EntityId(1), id)
}

func TestSpawnInvalidComponent(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Spawn(nil)
	assert.True(t, errors.Is(err, ecs.ErrInvalidComponent))

	var nilPos *Position
	_, err = storage.Spawn(nilPos)
	assert.True(t, errors.Is(err, ecs.ErrInvalidComponent))
}

func TestGetComponent(t *testing.T) {
	storage := newTestStorage(t)

	id := mustSpawn(t, storage, &Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	posComp := storage.GetComponent(id, reflect.TypeOf(Position{}))
	require.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name, ok := ecs.ReadComponent[Name](storage, id)
	assert.True(t, ok)
	assert.Equal(t, "Test Entity", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	_, ok = ecs.ReadComponent[Velocity](storage, id)
	assert.False(t, ok)
}

func TestMutableComponentWritesThrough(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Health{Current: 10, Max: 100})

	h := ecs.MutableComponent[Health](storage, id)
	require.NotNil(t, h)
	h.Current = 55

	got, _ := ecs.ReadComponent[Health](storage, id)
	assert.Equal(t, 55, got.Current)

	snapshot, _ := ecs.ReadComponent[Health](storage, id)
	snapshot.Current = 1
	got, _ = ecs.ReadComponent[Health](storage, id)
	assert.Equal(t, 55, got.Current, "ReadComponent returns a copy")
}

func TestAttach(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Position{X: 1})

	require.NoError(t, storage.Attach(id, Velocity{DX: 2}))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))

	require.NoError(t, storage.Attach(id, &Position{X: 9}), "attach overwrites")
	pos, _ := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, float32(9), pos.X)

	err := storage.Attach(id, float64(2))
	assert.True(t, errors.Is(err, ecs.ErrUnregisteredKind))

	err = storage.Attach(ecs.EntityId(99), Position{})
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity))
}

func TestDetach(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Position{}, Velocity{})

	require.NoError(t, storage.Detach(id, reflect.TypeFor[Velocity]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))

	require.NoError(t, storage.Detach(id, reflect.TypeFor[Velocity]()), "detaching an absent kind is a no-op")

	err := storage.Detach(id, reflect.TypeFor[float64]())
	assert.True(t, errors.Is(err, ecs.ErrUnregisteredKind))

	err = storage.Detach(0, reflect.TypeFor[Position]())
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity))
}

func TestDespawn(t *testing.T) {
	storage := newTestStorage(t)

	id := mustSpawn(t, storage, &Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})
	require.NoError(t, storage.Despawn(id))

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))
	assert.Nil(t, storage.KindsOf(id))
	assert.Equal(t, 0, storage.EntityCount())

	err := storage.Despawn(id)
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity), "despawn twice")

	err = storage.Attach(id, Position{})
	assert.True(t, errors.Is(err, ecs.ErrUnknownEntity), "despawned ids stay dead")

	next := mustSpawn(t, storage, Position{})
	assert.Greater(t, next, id, "ids are never reused")
}

func TestKindsOf(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Tag("x"), Position{}, Health{})

	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[Position](),
		reflect.TypeFor[Health](),
		reflect.TypeFor[Tag](),
	}, storage.KindsOf(id), "registration order, not spawn order")
}

func TestStorageQuery(t *testing.T) {
	storage := newTestStorage(t)

	a := mustSpawn(t, storage, Position{}, Velocity{})
	mustSpawn(t, storage, Position{})
	c := mustSpawn(t, storage, Velocity{}, Position{}, Health{})
	mustSpawn(t, storage, Velocity{})

	ids, err := storage.Query(reflect.TypeFor[Position](), reflect.TypeFor[Velocity]())
	require.NoError(t, err)
	assert.Equal(t, []ecs.EntityId{a, c}, ids)

	require.NoError(t, storage.Detach(a, reflect.TypeFor[Velocity]()))
	ids, err = storage.Query(reflect.TypeFor[Position](), reflect.TypeFor[Velocity]())
	require.NoError(t, err)
	assert.Equal(t, []ecs.EntityId{c}, ids)

	all, err := storage.Query()
	require.NoError(t, err)
	assert.Len(t, all, 4, "empty query matches every live entity")
	assert.Equal(t, all, storage.Entities())

	_, err = storage.Query(reflect.TypeFor[float64]())
	assert.True(t, errors.Is(err, ecs.ErrUnregisteredKind))
}

func TestMarkerComponents(t *testing.T) {
	storage := newTestStorage(t)
	player := mustSpawn(t, storage, Position{}, PlayerController{})
	mustSpawn(t, storage, Position{})

	ids, err := storage.Query(reflect.TypeFor[PlayerController]())
	require.NoError(t, err)
	assert.Equal(t, []ecs.EntityId{player}, ids)
}

func TestSliceComponent(t *testing.T) {
	storage := newTestStorage(t)
	id := mustSpawn(t, storage, Inventory{Items: []string{"sword"}})

	inv := ecs.MutableComponent[Inventory](storage, id)
	inv.Items = append(inv.Items, "shield")

	got, _ := ecs.ReadComponent[Inventory](storage, id)
	assert.Equal(t, []string{"sword", "shield"}, got.Items)
}
