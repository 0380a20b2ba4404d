// Package render defines the boundary between the simulation core and
// whatever draws it. The core writes position, rotation and scale into a
// Handle's Transform; renderers only read them.
package render

import "github.com/go-gl/mathgl/mgl64"

// Transform is the render-ready state of one drawable. Rotation holds Euler
// angles in radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform with unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Handle is an opaque drawable the simulation writes into.
type Handle interface {
	Transform() *Transform
}

// Shape selects the primitive a bridge draws for a Mesh.
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapeTetrahedron
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeTetrahedron:
		return "tetrahedron"
	}
	return "unknown"
}

// Mesh is the default Handle: a transform plus what bridges need to draw it.
type Mesh struct {
	Label     string
	Shape     Shape
	Color     [3]uint8
	transform Transform
}

// NewMesh creates a mesh at position with unit scale.
func NewMesh(label string, shape Shape, color [3]uint8, position mgl64.Vec3) *Mesh {
	m := &Mesh{
		Label:     label,
		Shape:     shape,
		Color:     color,
		transform: NewTransform(),
	}
	m.transform.Position = position
	return m
}

// Transform implements Handle.
func (m *Mesh) Transform() *Transform {
	return &m.transform
}
