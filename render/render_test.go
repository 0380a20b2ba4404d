package render_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/render"
)

func TestNewTransformHasUnitScale(t *testing.T) {
	tr := render.NewTransform()
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, tr.Scale)
	assert.Equal(t, mgl64.Vec3{}, tr.Position)
	assert.Equal(t, mgl64.Vec3{}, tr.Rotation)
}

func TestMeshTransformIsStable(t *testing.T) {
	m := render.NewMesh("cube", render.ShapeBox, [3]uint8{1, 2, 3}, mgl64.Vec3{1, 2, 3})
	var h render.Handle = m

	h.Transform().Rotation[1] = 0.5
	assert.Same(t, m.Transform(), h.Transform())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, m.Transform().Position)
	assert.Equal(t, 0.5, m.Transform().Rotation.Y())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "box", render.ShapeBox.String())
	assert.Equal(t, "sphere", render.ShapeSphere.String())
	assert.Equal(t, "tetrahedron", render.ShapeTetrahedron.String())
	assert.Equal(t, "unknown", render.Shape(42).String())
}

func TestProject(t *testing.T) {
	cam := render.DefaultCamera()
	focal := 100 / math.Tan(math.Pi/6)

	tr := render.NewTransform()
	p, ok := cam.Project(&tr, 400, 200)
	require.True(t, ok)
	assert.InDelta(t, 200, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
	assert.InDelta(t, 5, p.Depth, 1e-9)
	assert.InDelta(t, focal*0.5/5, p.Radius, 1e-9)

	tr.Position = mgl64.Vec3{1, 1, -5}
	p, ok = cam.Project(&tr, 400, 200)
	require.True(t, ok)
	assert.InDelta(t, 200+focal/10, p.X, 1e-9)
	assert.InDelta(t, 100-focal/10, p.Y, 1e-9, "screen y grows downward")

	tr.Position = mgl64.Vec3{0, 0, 4.5}
	_, ok = cam.Project(&tr, 400, 200)
	assert.False(t, ok, "inside the near plane")
}

func TestProjectMatchesMathglViewport(t *testing.T) {
	cam := render.Camera{Z: 3, FovY: mgl64.DegToRad(45), Near: 0.5}
	tr := render.NewTransform()
	tr.Position = mgl64.Vec3{-2, 1.5, -12}

	p, ok := cam.Project(&tr, 640, 480)
	require.True(t, ok, "a zero far plane falls back to a default depth range")
	assert.InDelta(t, 15, p.Depth, 1e-9)

	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(cam.FovY, 640.0/480, cam.Near, cam.Near+1000)
	center := mgl64.Project(tr.Position, view, proj, 0, 0, 640, 480)
	back, err := mgl64.UnProject(mgl64.Vec3{p.X, 480 - p.Y, center.Z()}, view, proj, 0, 0, 640, 480)
	require.NoError(t, err)
	assert.InDelta(t, -2, back.X(), 1e-6)
	assert.InDelta(t, 1.5, back.Y(), 1e-6)
	assert.InDelta(t, -12, back.Z(), 1e-6)

	focal := 240 / math.Tan(mgl64.DegToRad(45)/2)
	assert.InDelta(t, focal*0.5/15, p.Radius, 1e-9)

	_, ok = cam.Project(&tr, 0, 480)
	assert.False(t, ok, "empty viewport")
}

func TestProjectAllOrdersFarthestFirst(t *testing.T) {
	near := render.NewMesh("near", render.ShapeBox, [3]uint8{}, mgl64.Vec3{0, 0, -1})
	far := render.NewMesh("far", render.ShapeSphere, [3]uint8{}, mgl64.Vec3{0, 0, -20})
	behind := render.NewMesh("behind", render.ShapeBox, [3]uint8{}, mgl64.Vec3{0, 0, 10})
	tieA := render.NewMesh("tieA", render.ShapeBox, [3]uint8{}, mgl64.Vec3{1, 0, -10})
	tieB := render.NewMesh("tieB", render.ShapeBox, [3]uint8{}, mgl64.Vec3{-1, 0, -10})

	got := render.DefaultCamera().ProjectAll([]*render.Mesh{near, tieA, behind, far, tieB}, 640, 480)

	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Mesh.Label
	}
	assert.Equal(t, []string{"far", "tieA", "tieB", "near"}, labels)
}

func TestOutline(t *testing.T) {
	p := render.Projection{X: 10, Y: 20, Radius: 2}

	box := render.Outline(render.ShapeBox, p, 0)
	require.Len(t, box, 4)
	assert.InDelta(t, 12, box[0][0], 1e-9)
	assert.InDelta(t, 20, box[0][1], 1e-9)
	assert.InDelta(t, 10, box[1][0], 1e-9)
	assert.InDelta(t, 18, box[1][1], 1e-9, "counter-clockwise on screen")

	tri := render.Outline(render.ShapeTetrahedron, p, math.Pi/2)
	require.Len(t, tri, 3)
	assert.InDelta(t, 10, tri[0][0], 1e-9)
	assert.InDelta(t, 18, tri[0][1], 1e-9)
	for _, pt := range tri {
		assert.InDelta(t, 2, math.Hypot(pt[0]-10, pt[1]-20), 1e-9)
	}

	assert.Nil(t, render.Outline(render.ShapeSphere, p, 0))
}
