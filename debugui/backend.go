package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend as an overlay
// for the ebiten bridge.
type ImguiBackend struct {
	backend *ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the ImGui context and the ebiten window it draws
// into. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{backend: backend}
}

func (b *ImguiBackend) BeginFrame() {
	b.backend.BeginFrame()
}

func (b *ImguiBackend) EndFrame() {
	b.backend.EndFrame()
}

func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.backend.Draw(screen)
}

func (b *ImguiBackend) Layout(width, height int) {
	b.backend.Layout(width, height)
}
