// Package ebiten hosts the debug UI on the Ebiten ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/galton/galton/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the window and an ImGui context without an
// imgui.ini file.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Update runs one UI frame. Call it from ebiten.Game.Update before
// reading ui.Input().
func (b *ImguiBackend) Update(ui *debugui.UI) {
	b.BeginFrame()
	ui.Frame(1.0 / float64(ebiten.TPS()))
	b.EndFrame()
}
