package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tickworld/ecs"
)

const (
	// GravityAcceleration is applied to Speed.Y of Gravity entities, in units/s².
	GravityAcceleration = 9.8
)

// GravitySystem accelerates Gravity entities downwards.
type GravitySystem struct {
	Entities ecs.Query[struct {
		*Gravity
		*Speed
	}]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Speed.Y -= GravityAcceleration * frame.DeltaTime
	}
}

// MovementSystem integrates Position by Speed.
type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Speed
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	for entity := range s.Entities.Values() {
		entity.Position.X += entity.Speed.X * dt
		entity.Position.Y += entity.Speed.Y * dt
		entity.Position.Z += entity.Speed.Z * dt
	}
}

// RenderSystem copies Position into the render handle. It is the only place
// simulated positions leave the store.
type RenderSystem struct {
	Entities ecs.Query[struct {
		*Position
		*MeshRef
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		if entity.MeshRef.Handle == nil {
			continue
		}
		p := entity.Position
		entity.MeshRef.Handle.Transform().Position = mgl64.Vec3{p.X, p.Y, p.Z}
	}
}

// SpinSystem rotates the render handle directly; the accumulated angle lives
// in the handle, not in a component.
type SpinSystem struct {
	Entities ecs.Query[struct {
		*Spin
		*MeshRef
	}]
}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	for entity := range s.Entities.Values() {
		if entity.MeshRef.Handle == nil {
			continue
		}
		rotation := &entity.MeshRef.Handle.Transform().Rotation
		rotation[0] += entity.Spin.X * dt
		rotation[1] += entity.Spin.Y * dt
		rotation[2] += entity.Spin.Z * dt
	}
}

// FallThroughSystem wraps positions that left their range back in from the
// opposite side, keeping the overshoot. Like BounceSystem it only reacts to
// movement, so a zero-delta tick leaves positions alone.
type FallThroughSystem struct {
	Entities ecs.Query[struct {
		*Position
		*PositionRange
		*FallThrough
	}]
}

func (s *FallThroughSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.DeltaTime == 0 {
		return
	}
	for entity := range s.Entities.Values() {
		p, r := entity.Position, entity.PositionRange
		p.X = Wrap(p.X, r.MinX, r.MaxX)
		p.Y = Wrap(p.Y, r.MinY, r.MaxY)
		p.Z = Wrap(p.Z, r.MinZ, r.MaxZ)
	}
}

// Wrap maps value into [lo, hi] toroidally. Values on the boundary are left
// alone. A degenerate range collapses to lo.
func Wrap(value, lo, hi float64) float64 {
	width := hi - lo
	switch {
	case value > hi:
		if width <= 0 {
			return lo
		}
		return lo + math.Mod(value-hi, width)
	case value < lo:
		if width <= 0 {
			return lo
		}
		return hi - math.Mod(lo-value, width)
	default:
		return value
	}
}

// BounceSystem reverses speed on every axis where the entity is outside its
// range. Position is left to MovementSystem, so an entity may sit outside
// the range for one tick. Reflection only follows movement: a zero-delta
// tick reflects nothing.
type BounceSystem struct {
	Entities ecs.Query[struct {
		*Bounce
		*Position
		*Speed
		*PositionRange
	}]
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.DeltaTime == 0 {
		return
	}
	for entity := range s.Entities.Values() {
		p, v, r := entity.Position, entity.Speed, entity.PositionRange
		if p.X < r.MinX || p.X > r.MaxX {
			v.X = -v.X
		}
		if p.Y < r.MinY || p.Y > r.MaxY {
			v.Y = -v.Y
		}
		if p.Z < r.MinZ || p.Z > r.MaxZ {
			v.Z = -v.Z
		}
	}
}

// AirResistanceSystem decays speed by (1-r)^dt, which composes across ticks
// independently of the frame rate.
type AirResistanceSystem struct {
	Entities ecs.Query[struct {
		*AirResistance
		*Speed
	}]
}

func (s *AirResistanceSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		factor := math.Pow(1-entity.AirResistance.Value, frame.DeltaTime)
		entity.Speed.X *= factor
		entity.Speed.Y *= factor
		entity.Speed.Z *= factor
	}
}

// PulseSystem sets a uniform scale from wall-clock time.
type PulseSystem struct {
	Entities ecs.Query[struct {
		*Pulse
		*MeshRef
	}]
}

func (s *PulseSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		if entity.MeshRef.Handle == nil {
			continue
		}
		scale := PulseScale(*entity.Pulse, frame.Time)
		entity.MeshRef.Handle.Transform().Scale = mgl64.Vec3{scale, scale, scale}
	}
}

// PulseScale evaluates the pulse curve at timeMillis.
//
// The curve is (sin/2 + 1) rather than (sin/2 + 0.5), so it spans
// [min + (max-min)/2, min + 3(max-min)/2] instead of [min, max].
func PulseScale(p Pulse, timeMillis float64) float64 {
	pulsePerMillisecond := p.Speed / 1000
	return (math.Sin(timeMillis*pulsePerMillisecond*math.Pi*2)/2+1)*(p.Max-p.Min) + p.Min
}

// RegisterSystems registers the catalog in its fixed execution order.
func RegisterSystems(scheduler *ecs.Scheduler) error {
	systems := []ecs.System{
		&GravitySystem{},
		&MovementSystem{},
		&RenderSystem{},
		&SpinSystem{},
		&FallThroughSystem{},
		&BounceSystem{},
		&AirResistanceSystem{},
		&PulseSystem{},
	}
	for _, system := range systems {
		if err := scheduler.Register(system); err != nil {
			return err
		}
	}
	return nil
}
