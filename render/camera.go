package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a fixed perspective camera on the +Z axis looking down -Z.
type Camera struct {
	Z    float64
	FovY float64
	Near float64
	Far  float64
}

// DefaultCamera sits at z=5 with a 60 degree vertical field of view.
func DefaultCamera() Camera {
	return Camera{Z: 5, FovY: mgl64.DegToRad(60), Near: 1, Far: 1000}
}

// Projection is a transform mapped onto a width x height viewport.
type Projection struct {
	X, Y   float64
	Radius float64
	Depth  float64
}

func (c Camera) view() mgl64.Mat4 {
	eye := mgl64.Vec3{0, 0, c.Z}
	return mgl64.LookAtV(eye, eye.Sub(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 1, 0})
}

func (c Camera) perspective(width, height float64) mgl64.Mat4 {
	far := c.Far
	if far <= c.Near {
		far = c.Near + 1000
	}
	return mgl64.Perspective(c.FovY, width/height, c.Near, far)
}

// Project maps t onto a viewport of the given size, with y growing
// downwards. It reports false when the transform is behind the near plane.
// Radius is the projected half-extent of a unit shape at t's mean scale.
func (c Camera) Project(t *Transform, width, height float64) (Projection, bool) {
	view := c.view()
	depth := -view.Mul4x1(t.Position.Vec4(1)).Z()
	if depth < c.Near || width <= 0 || height <= 0 {
		return Projection{}, false
	}

	proj := c.perspective(width, height)
	w, h := int(math.Round(width)), int(math.Round(height))

	center := mgl64.Project(t.Position, view, proj, 0, 0, w, h)
	scale := (t.Scale.X() + t.Scale.Y() + t.Scale.Z()) / 3
	edge := mgl64.Project(t.Position.Add(mgl64.Vec3{0.5 * scale, 0, 0}), view, proj, 0, 0, w, h)

	return Projection{
		X:      center.X(),
		Y:      float64(h) - center.Y(),
		Radius: math.Abs(edge.X() - center.X()),
		Depth:  depth,
	}, true
}
