// Package termbridge draws render handles onto a terminal with tcell.
package termbridge

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/driver"
	"github.com/plus3/tickworld/render"
)

// Terminal cells are about twice as tall as they are wide. Projection runs
// on a grid of square half-cells and rows are halved when plotting.
const cellAspect = 2

// Source supplies the meshes to draw.
type Source interface {
	Meshes() []*render.Mesh
}

// Screen draws meshes onto a tcell.Screen.
type Screen struct {
	screen tcell.Screen
	source Source
	camera render.Camera
	logger zerolog.Logger
}

type Option func(*Screen)

func WithCamera(camera render.Camera) Option {
	return func(s *Screen) {
		s.camera = camera
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Screen) {
		s.logger = logger
	}
}

// New wraps an initialized tcell screen.
func New(screen tcell.Screen, source Source, opts ...Option) *Screen {
	s := &Screen{
		screen: screen,
		source: source,
		camera: render.DefaultCamera(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates and initializes the terminal screen.
func Open(source Source, opts ...Option) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, source, opts...), nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Draw paints one frame and shows it.
func (s *Screen) Draw() {
	s.screen.Clear()
	cols, rows := s.screen.Size()

	for _, item := range s.camera.ProjectAll(s.source.Meshes(), float64(cols), float64(rows*cellAspect)) {
		s.drawMesh(item)
	}
	s.screen.Show()
}

func (s *Screen) drawMesh(item render.Projected) {
	c := item.Mesh.Color
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2])))
	rotation := item.Mesh.Transform().Rotation

	points := render.Outline(item.Mesh.Shape, item.Projection, rotation.Z()+rotation.Y())
	if points == nil {
		s.fillDisc(item.X, item.Y, item.Radius, style)
		return
	}
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		s.line(a[0], a[1], b[0], b[1], '*', style)
	}
	s.plot(item.X, item.Y, '+', style)
}

func (s *Screen) fillDisc(cx, cy, r float64, style tcell.Style) {
	if r < 0.5 {
		s.plot(cx, cy, 'o', style)
		return
	}
	for y := cy - r; y <= cy+r; y += cellAspect {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				s.plot(x, y, 'o', style)
			}
		}
	}
}

func (s *Screen) line(x0, y0, x1, y1 float64, ch rune, style tcell.Style) {
	steps := math.Max(math.Abs(x1-x0), math.Abs(y1-y0)/cellAspect)
	if steps < 1 {
		s.plot(x0, y0, ch, style)
		return
	}
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		s.plot(x0+(x1-x0)*t, y0+(y1-y0)*t, ch, style)
	}
}

// plot writes ch at half-cell coordinates; points off screen are dropped.
func (s *Screen) plot(x, y float64, ch rune, style tcell.Style) {
	cols, rows := s.screen.Size()
	col := int(math.Round(x))
	row := int(math.Floor(y / cellAspect))
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, ch, nil, style)
}

// Run advances d and redraws every interval until ctx is cancelled, a tick
// fails, or the user presses Escape, Ctrl-C or q.
func (s *Screen) Run(ctx context.Context, d *driver.Driver, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	quit := make(chan struct{})
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			if quitKey(ev) {
				close(quit)
				return
			}
		}
	}()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-ticker.C:
			if _, err := d.Advance(); err != nil {
				s.logger.Error().Err(err).Msg("tick failed")
				return err
			}
			s.Draw()
		}
	}
}

func quitKey(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}
