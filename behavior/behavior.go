// Package behavior implements the object model: every Object owns exactly
// one Behavior, a tagged variant advanced through a single dispatch table.
package behavior

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"

	"github.com/plus3/tickworld/render"
)

// Kind tags the variant held by a Behavior.
type Kind uint8

const (
	KindSpin Kind = iota
	KindBounce
	KindCircular
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindSpin:
		return "spin"
	case KindBounce:
		return "bounce"
	case KindCircular:
		return "circular"
	}
	return "unknown"
}

const (
	// Gravity is the acceleration used by bouncing behaviors, in units/s².
	Gravity = 9.81
	// Floor is the height below which a bounce reverses.
	Floor = -2.0
)

// FloorPolicy selects how a bounce reacts when it passes the floor.
type FloorPolicy uint8

const (
	// FloorReflect flips a descending velocity and leaves the position where
	// the tick put it, which may be up to one tick of motion below the floor.
	// Unlike an unconditional flip on every tick below the floor, an object
	// already moving up is left alone, so it cannot be turned back down and
	// sink through the floor.
	FloorReflect FloorPolicy = iota
	// FloorClamp pins the position to the floor when it passes it and to the
	// amplitude when it passes that, zeroing velocity at the ceiling.
	FloorClamp
)

func (p FloorPolicy) String() string {
	switch p {
	case FloorReflect:
		return "reflect"
	case FloorClamp:
		return "clamp"
	}
	return "unknown"
}

// ErrUnknownPolicy is returned by ParseFloorPolicy.
var ErrUnknownPolicy = eris.New("unknown floor policy")

// ParseFloorPolicy parses "reflect" or "clamp".
func ParseFloorPolicy(s string) (FloorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reflect", "":
		return FloorReflect, nil
	case "clamp":
		return FloorClamp, nil
	}
	return 0, eris.Wrapf(ErrUnknownPolicy, "%q", s)
}

type SpinState struct {
	Speed float64
}

type BounceState struct {
	Speed     float64
	Amplitude float64
	Velocity  float64
	Policy    FloorPolicy
}

type CircularState struct {
	Speed  float64
	Radius float64
	Angle  float64
	Center mgl64.Vec3
}

// Behavior is one of Spin, Bounce or Circular. Only the state matching Kind
// is meaningful.
type Behavior struct {
	Kind     Kind
	Spin     SpinState
	Bounce   BounceState
	Circular CircularState
}

// NewSpin rotates around X at +speed and around Y at -speed radians/s.
func NewSpin(speed float64) *Behavior {
	return &Behavior{
		Kind: KindSpin,
		Spin: SpinState{Speed: speed},
	}
}

// NewBounce bounces vertically. The launch velocity sqrt(8*g*amplitude/3)
// is derived from amplitude; speed is kept for reference only.
func NewBounce(speed, amplitude float64, policy FloorPolicy) *Behavior {
	return &Behavior{
		Kind: KindBounce,
		Bounce: BounceState{
			Speed:     speed,
			Amplitude: amplitude,
			Velocity:  LaunchVelocity(amplitude),
			Policy:    policy,
		},
	}
}

// LaunchVelocity is the initial upward velocity of a bounce with the given amplitude.
func LaunchVelocity(amplitude float64) float64 {
	return math.Sqrt(8 * Gravity * amplitude / 3)
}

// NewCircular orbits center in the XY plane at speed radians/s.
func NewCircular(speed, radius float64, center mgl64.Vec3) *Behavior {
	return &Behavior{
		Kind: KindCircular,
		Circular: CircularState{
			Speed:  speed,
			Radius: radius,
			Center: center,
		},
	}
}

var advanceTable = [kindCount]func(b *Behavior, t *render.Transform, dt float64){
	KindSpin:     advanceSpin,
	KindBounce:   advanceBounce,
	KindCircular: advanceCircular,
}

// Advance moves b forward by dt seconds, writing into h's transform. A zero
// dt leaves both the behavior and the transform untouched.
func Advance(b *Behavior, h render.Handle, dt float64) {
	if b == nil || h == nil || b.Kind >= kindCount || dt == 0 {
		return
	}
	advanceTable[b.Kind](b, h.Transform(), dt)
}

func advanceSpin(b *Behavior, t *render.Transform, dt float64) {
	t.Rotation[0] += b.Spin.Speed * dt
	t.Rotation[1] -= b.Spin.Speed * dt
}

func advanceBounce(b *Behavior, t *render.Transform, dt float64) {
	s := &b.Bounce
	s.Velocity -= Gravity * dt
	y := t.Position[1] + s.Velocity*dt

	switch s.Policy {
	case FloorClamp:
		if y < Floor {
			y = Floor
			s.Velocity = math.Abs(s.Velocity)
		} else if y > s.Amplitude {
			y = s.Amplitude
			s.Velocity = 0
		}
	default:
		if y < Floor && s.Velocity < 0 {
			s.Velocity = -s.Velocity
		}
	}

	t.Position[1] = y
}

func advanceCircular(b *Behavior, t *render.Transform, dt float64) {
	s := &b.Circular
	s.Angle += s.Speed * dt
	t.Position = s.Center.Add(mgl64.Vec3{
		s.Radius * math.Cos(s.Angle),
		s.Radius * math.Sin(s.Angle),
		0,
	})
}
