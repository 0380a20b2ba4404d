package debugui

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/motion"
	"github.com/plus3/tickworld/render"
)

type point struct {
	X, Y float64
}

type label struct {
	Text   string
	hidden bool
	Next   *label
}

func newStorage(t *testing.T) *ecs.Storage {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	require.NoError(t, ecs.RegisterComponent[point](registry))
	require.NoError(t, ecs.RegisterComponent[label](registry))
	return ecs.NewStorage(registry)
}

func TestQueryDebuggerRun(t *testing.T) {
	storage := newStorage(t)
	a, err := storage.Spawn(point{X: 1})
	require.NoError(t, err)
	b, err := storage.Spawn(point{X: 2}, label{Text: "b"})
	require.NoError(t, err)
	_, err = storage.Spawn(label{Text: "c"})
	require.NoError(t, err)

	qd := NewQueryDebugger()
	types, ids, err := qd.Run(storage)
	require.NoError(t, err)
	assert.Nil(t, types)
	assert.Nil(t, ids)

	qd.Toggle(reflect.TypeFor[label]())
	qd.Toggle(reflect.TypeFor[point]())
	types, ids, err = qd.Run(storage)
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[point](), reflect.TypeFor[label]()}, types)
	assert.Equal(t, []ecs.EntityId{b}, ids)

	qd.Toggle(reflect.TypeFor[label]())
	_, ids, err = qd.Run(storage)
	require.NoError(t, err)
	assert.Equal(t, []ecs.EntityId{a, b}, ids)
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Zero(t, ps.AverageFrameTime())

	ps.Record(0.010)
	ps.Record(0.030)
	assert.InDelta(t, 10.0, ps.AverageFrameTime(), 1e-4)

	for range 4 {
		ps.Record(0.016)
	}
	assert.InDelta(t, 16.0, ps.AverageFrameTime(), 1e-4, "old samples roll out of the ring")
}

func TestPerformanceStatsEmptyHistory(t *testing.T) {
	for _, n := range []int{0, -3} {
		ps := NewPerformanceStats(n)
		assert.NotPanics(t, func() { ps.Record(0.020) })
		assert.InDelta(t, 20.0, ps.AverageFrameTime(), 1e-4)
	}
}

type placed struct {
	At    *mgl64.Vec3
	Mesh  *render.Mesh
	Count *int
}

func TestFieldLayouts(t *testing.T) {
	l := NewFieldLayouts()

	fields := l.Of(reflect.TypeFor[label]())
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Name: "Text", Index: 0, Kind: FieldValue}, fields[0])
	assert.Equal(t, Field{Name: "Next", Index: 2, Kind: FieldValue, Deref: true}, fields[1])

	again := l.Of(reflect.TypeFor[label]())
	assert.Same(t, &fields[0], &again[0])

	assert.Empty(t, l.Of(reflect.TypeFor[int]()))
}

func TestFieldLayoutsClassifyTransforms(t *testing.T) {
	l := NewFieldLayouts()

	assert.Equal(t, []Field{{Name: "Handle", Index: 0, Kind: FieldHandle}}, l.Of(reflect.TypeFor[motion.MeshRef]()))

	for _, f := range l.Of(reflect.TypeFor[render.Transform]()) {
		assert.Equal(t, FieldVec3, f.Kind, f.Name)
		assert.False(t, f.Deref, f.Name)
	}

	assert.Equal(t, []Field{
		{Name: "At", Index: 0, Kind: FieldVec3, Deref: true},
		{Name: "Mesh", Index: 1, Kind: FieldHandle},
		{Name: "Count", Index: 2, Kind: FieldValue, Deref: true},
	}, l.Of(reflect.TypeFor[placed]()))
}

func TestVec3Narrowing(t *testing.T) {
	v := mgl64.Vec3{1.5, -2.25, 0.125}
	assert.Equal(t, [3]float32{1.5, -2.25, 0.125}, toFloat32(v))
	assert.Equal(t, mgl64.Vec3{1.5, -2.25, 0}, fromFloat32([3]float32{1.5, -2.25, 0}))
}

func TestInstallSpawnsWindows(t *testing.T) {
	storage := newStorage(t)
	scheduler := ecs.NewScheduler(storage)

	require.NoError(t, Install(scheduler))

	assert.Equal(t, 4, storage.EntityCount())
	assert.NotNil(t, ecs.ReadSingleton[ImguiInputState](storage))
	assert.Equal(t, []string{"ImguiSystem", "PanelSystem"}, scheduler.Systems())

	browsers, err := storage.Query(reflect.TypeFor[EntityBrowser]())
	require.NoError(t, err)
	require.Len(t, browsers, 1)
	browser := ecs.MutableComponent[EntityBrowser](storage, browsers[0])
	require.NotNil(t, browser)
	assert.Equal(t, ecs.EntityId(0), browser.SelectedEntity())
}
