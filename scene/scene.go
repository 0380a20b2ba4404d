// Package scene builds the demo worlds: a component-system world with a
// bouncing cube and a falling tetrahedron, and an object world with a
// spinning cube, a bouncing ball and an orbiter.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/behavior"
	"github.com/plus3/tickworld/driver"
	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/motion"
	"github.com/plus3/tickworld/render"
)

// Scene is a world a driver can tick and a bridge can draw.
type Scene interface {
	driver.Ticker
	Name() string
	Meshes() []*render.Mesh
}

// ECS is the component-system scene.
type ECS struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Cube        ecs.EntityId
	Tetrahedron ecs.EntityId

	meshes []*render.Mesh
}

// NewECS registers the motion kinds and systems, spawns both entities and
// runs one zero-delta tick so every handle starts at its entity's position.
func NewECS(logger zerolog.Logger) (*ECS, error) {
	registry := ecs.NewComponentRegistry()
	if err := motion.RegisterComponents(registry); err != nil {
		return nil, err
	}

	storage := ecs.NewStorage(registry, ecs.WithStorageLogger(logger))
	s := &ECS{
		Registry: registry,
		Storage:  storage,
	}

	cubeMesh := render.NewMesh("cube", render.ShapeBox, [3]uint8{0x00, 0xb4, 0x53}, mgl64.Vec3{})
	cube, err := storage.Spawn(
		motion.Position{X: -1, Y: 0, Z: -10},
		motion.Speed{X: 5, Y: 2, Z: 3},
		motion.Spin{X: 0.5, Y: 1, Z: 1.5},
		motion.MeshRef{Handle: cubeMesh},
		motion.PositionRange{MinX: -8, MaxX: 8, MinY: -5, MaxY: 5, MinZ: -15, MaxZ: -5},
		motion.Bounce{},
	)
	if err != nil {
		return nil, err
	}

	tetraMesh := render.NewMesh("tetrahedron", render.ShapeTetrahedron, [3]uint8{0x1f, 0x9a, 0xff}, mgl64.Vec3{})
	tetra, err := storage.Spawn(
		motion.Position{X: 1, Y: 0, Z: -10},
		motion.Speed{X: -0.1, Y: 15, Z: 0.3},
		motion.Gravity{},
		motion.Spin{X: 0.5, Y: 1, Z: 1.5},
		motion.MeshRef{Handle: tetraMesh},
		motion.DefaultPositionRange(),
		motion.FallThrough{},
		motion.AirResistance{Value: 0.5},
		motion.Pulse{Min: 0.5, Max: 1.5, Speed: 1.5},
	)
	if err != nil {
		return nil, err
	}

	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(logger))
	if err := motion.RegisterSystems(scheduler); err != nil {
		return nil, err
	}

	ecs.LogComponents(&logger, registry, zerolog.DebugLevel)
	ecs.LogSystems(&logger, scheduler, zerolog.DebugLevel)

	if err := scheduler.Step(0, 0); err != nil {
		return nil, err
	}

	s.Scheduler = scheduler
	s.Cube = cube
	s.Tetrahedron = tetra
	s.meshes = []*render.Mesh{cubeMesh, tetraMesh}
	return s, nil
}

func (s *ECS) Name() string {
	return "ecs"
}

func (s *ECS) Meshes() []*render.Mesh {
	return s.meshes
}

// Tick implements driver.Ticker.
func (s *ECS) Tick(dt, timeMillis float64) error {
	return s.Scheduler.Step(dt, timeMillis)
}

// Objects is the object-behavior scene.
type Objects struct {
	Population *behavior.Population
	meshes     []*render.Mesh
}

const (
	CubeId    behavior.ObjectId = 2
	BallId    behavior.ObjectId = 1
	OrbiterId behavior.ObjectId = 3
)

// NewObjects builds the cube, ball and orbiter. policy selects how the ball
// meets the floor.
func NewObjects(logger zerolog.Logger, policy behavior.FloorPolicy) (*Objects, error) {
	gray := [3]uint8{0xaa, 0xaa, 0xaa}

	cubeMesh := render.NewMesh("cube", render.ShapeBox, gray, mgl64.Vec3{0, 0, 0})
	ballMesh := render.NewMesh("ball", render.ShapeSphere, gray, mgl64.Vec3{2, 0, 0})
	orbiterMesh := render.NewMesh("orbiter", render.ShapeSphere, [3]uint8{0xff, 0xb3, 0xba}, mgl64.Vec3{-0.5, 0, 0})
	orbiterMesh.Transform().Scale = mgl64.Vec3{0.5, 0.5, 0.5}

	population := behavior.NewPopulation(logger)
	objects := []*behavior.Object{
		{Id: CubeId, Behavior: behavior.NewSpin(2), Handle: cubeMesh},
		{Id: BallId, Behavior: behavior.NewBounce(5, 2, policy), Handle: ballMesh},
		{Id: OrbiterId, Behavior: behavior.NewCircular(1, 1.5, mgl64.Vec3{-2, 0, 0}), Handle: orbiterMesh},
	}
	for _, obj := range objects {
		if err := population.Add(obj); err != nil {
			return nil, err
		}
	}

	return &Objects{
		Population: population,
		meshes:     []*render.Mesh{cubeMesh, ballMesh, orbiterMesh},
	}, nil
}

func (s *Objects) Name() string {
	return "behavior"
}

func (s *Objects) Meshes() []*render.Mesh {
	return s.meshes
}

// Tick implements driver.Ticker.
func (s *Objects) Tick(dt, timeMillis float64) error {
	return s.Population.Tick(dt, timeMillis)
}
