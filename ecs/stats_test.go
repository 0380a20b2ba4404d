package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
)

type WorldSettings struct {
	Gravity float64
}

func TestCollectStats(t *testing.T) {
	storage := newTestStorage(t)
	mustSpawn(t, storage, Position{}, Velocity{})
	mustSpawn(t, storage, Position{})
	dead := mustSpawn(t, storage, Position{}, Health{})
	require.NoError(t, storage.Despawn(dead))

	storage.AddSingleton(WorldSettings{Gravity: 9.8})
	ecs.NewScheduler(storage)

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 8, stats.KindCount)
	assert.Equal(t, ecs.KindStats{Name: "ecs_test.Position", EntityCount: 2}, stats.KindBreakdown[0])
	assert.Equal(t, ecs.KindStats{Name: "ecs_test.Velocity", EntityCount: 1}, stats.KindBreakdown[1])
	assert.Equal(t, ecs.KindStats{Name: "ecs_test.Health", EntityCount: 0}, stats.KindBreakdown[3])
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs.Clock", "ecs_test.WorldSettings"}, stats.SingletonTypes)
}

func TestSingleton(t *testing.T) {
	storage := newTestStorage(t)

	accessor := ecs.NewSingleton[WorldSettings](storage, WorldSettings{Gravity: 1})
	assert.True(t, accessor.Exists())
	assert.Equal(t, 1.0, accessor.Get().Gravity)

	storage.AddSingleton(WorldSettings{Gravity: 2})
	assert.Equal(t, 2.0, accessor.Get().Gravity, "overwrite is visible through existing accessors")

	accessor.Get().Gravity = 3
	assert.Equal(t, 3.0, ecs.ReadSingleton[WorldSettings](storage).Gravity)

	var missing ecs.Singleton[Score]
	require.NoError(t, missing.Init(storage))
	assert.False(t, missing.Exists())
	assert.Nil(t, missing.Get())
}
