package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

func newTestRegistry(t testing.TB) *ecs.ComponentRegistry {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	require.NoError(t, ecs.RegisterComponent[Position](registry))
	require.NoError(t, ecs.RegisterComponent[Velocity](registry))
	require.NoError(t, ecs.RegisterComponent[Name](registry))
	require.NoError(t, ecs.RegisterComponent[Health](registry))
	require.NoError(t, ecs.RegisterComponent[PlayerController](registry))
	require.NoError(t, ecs.RegisterComponent[Score](registry))
	require.NoError(t, ecs.RegisterComponent[Tag](registry))
	require.NoError(t, ecs.RegisterComponent[Inventory](registry))
	return registry
}

func newTestStorage(t testing.TB) *ecs.Storage {
	t.Helper()
	return ecs.NewStorage(newTestRegistry(t))
}

func mustSpawn(t testing.TB, storage *ecs.Storage, components ...any) ecs.EntityId {
	t.Helper()
	id, err := storage.Spawn(components...)
	require.NoError(t, err)
	return id
}
