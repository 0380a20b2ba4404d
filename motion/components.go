// Package motion holds the component kinds and systems that move entities
// around: gravity, integration, spin, wrapping, bouncing, drag and pulsing.
package motion

import (
	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/render"
)

type Position struct {
	X, Y, Z float64
}

type Speed struct {
	X, Y, Z float64
}

// Spin is angular velocity in radians per second per axis.
type Spin struct {
	X, Y, Z float64
}

// PositionRange bounds an entity's position per axis.
type PositionRange struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// DefaultPositionRange is the cube [-10, 10] on every axis.
func DefaultPositionRange() PositionRange {
	return PositionRange{
		MinX: -10, MaxX: 10,
		MinY: -10, MaxY: 10,
		MinZ: -10, MaxZ: 10,
	}
}

// AirResistance is the fraction of speed lost per second.
type AirResistance struct {
	Value float64
}

// DefaultAirResistance loses 10% of speed per second.
func DefaultAirResistance() AirResistance {
	return AirResistance{Value: 0.1}
}

// Pulse oscillates an entity's uniform scale. Speed is in cycles per second.
type Pulse struct {
	Speed    float64
	Min, Max float64
}

// DefaultPulse pulses once per second between 1 and 2.
func DefaultPulse() Pulse {
	return Pulse{Speed: 1, Min: 1, Max: 2}
}

// Gravity marks entities pulled down along Y.
type Gravity struct{}

// FallThrough marks entities that wrap around their PositionRange.
type FallThrough struct{}

// Bounce marks entities that reflect off their PositionRange.
type Bounce struct{}

// MeshRef ties an entity to the render handle it drives.
type MeshRef struct {
	Handle render.Handle
}

// RegisterComponents registers every motion kind with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) error {
	registrations := []func(*ecs.ComponentRegistry) error{
		ecs.RegisterComponent[Position],
		ecs.RegisterComponent[Speed],
		ecs.RegisterComponent[Gravity],
		ecs.RegisterComponent[MeshRef],
		ecs.RegisterComponent[Spin],
		ecs.RegisterComponent[PositionRange],
		ecs.RegisterComponent[Bounce],
		ecs.RegisterComponent[FallThrough],
		ecs.RegisterComponent[AirResistance],
		ecs.RegisterComponent[Pulse],
	}
	for _, register := range registrations {
		if err := register(registry); err != nil {
			return err
		}
	}
	return nil
}
