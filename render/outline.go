package render

import (
	"math"
	"sort"
)

// Projected pairs a mesh with its viewport projection.
type Projected struct {
	Mesh *Mesh
	Projection
}

// ProjectAll projects every visible mesh and orders them farthest first, so
// bridges can paint in order. Meshes at equal depth keep their input order.
func (c Camera) ProjectAll(meshes []*Mesh, width, height float64) []Projected {
	out := make([]Projected, 0, len(meshes))
	for _, m := range meshes {
		p, ok := c.Project(m.Transform(), width, height)
		if !ok {
			continue
		}
		out = append(out, Projected{Mesh: m, Projection: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth > out[j].Depth
	})
	return out
}

// Outline returns the screen-space polygon of a shape rotated by angle
// radians about the view axis. Spheres have no outline and return nil.
func Outline(shape Shape, p Projection, angle float64) [][2]float64 {
	var corners int
	switch shape {
	case ShapeBox:
		corners = 4
	case ShapeTetrahedron:
		corners = 3
	default:
		return nil
	}

	points := make([][2]float64, corners)
	step := 2 * math.Pi / float64(corners)
	for i := range points {
		a := angle + step*float64(i)
		points[i] = [2]float64{
			p.X + p.Radius*math.Cos(a),
			p.Y - p.Radius*math.Sin(a),
		}
	}
	return points
}
