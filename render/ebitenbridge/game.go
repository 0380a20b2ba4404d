// Package ebitenbridge draws render handles into an ebiten window and drives
// the simulation from ebiten's update loop.
package ebitenbridge

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/driver"
	"github.com/plus3/tickworld/render"
)

// Overlay is drawn over the scene each frame, e.g. a Dear ImGui backend.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Source supplies the meshes to draw.
type Source interface {
	Meshes() []*render.Mesh
}

var background = color.RGBA{0x10, 0x10, 0x18, 0xff}

// Game implements ebiten.Game.
type Game struct {
	driver  *driver.Driver
	source  Source
	camera  render.Camera
	overlay Overlay
	logger  zerolog.Logger

	width, height int
}

type Option func(*Game)

func WithOverlay(overlay Overlay) Option {
	return func(g *Game) {
		g.overlay = overlay
	}
}

func WithCamera(camera render.Camera) Option {
	return func(g *Game) {
		g.camera = camera
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// New creates a Game that advances d once per ebiten update and draws the
// meshes of source.
func New(d *driver.Driver, source Source, opts ...Option) *Game {
	g := &Game{
		driver: d,
		source: source,
		camera: render.DefaultCamera(),
		logger: zerolog.Nop(),
		width:  1280,
		height: 720,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}

	if _, err := g.driver.Advance(); err != nil {
		g.logger.Error().Err(err).Msg("tick failed")
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, item := range g.camera.ProjectAll(g.source.Meshes(), float64(g.width), float64(g.height)) {
		drawMesh(screen, item)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func drawMesh(screen *ebiten.Image, item render.Projected) {
	c := color.RGBA{item.Mesh.Color[0], item.Mesh.Color[1], item.Mesh.Color[2], 0xff}
	rotation := item.Mesh.Transform().Rotation

	points := render.Outline(item.Mesh.Shape, item.Projection, rotation.Z()+rotation.Y())
	if points == nil {
		vector.DrawFilledCircle(screen, float32(item.X), float32(item.Y), float32(item.Radius), c, true)
		return
	}

	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 2, c, true)
	}
	vector.DrawFilledCircle(screen, float32(item.X), float32(item.Y), 2, c, true)
}

// Run opens a window and blocks until it is closed.
func Run(game *Game, title string) error {
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
