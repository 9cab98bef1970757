// Package debugui draws Dear ImGui panels for a running board. Panels are
// ECS entities in a UI storage separate from the board's own, so the
// overlay never shows up in the simulation's entity counts.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/galton/ecs"
)

// Panel is one ImGui window. Name is the window title; Pos and Size only
// apply the first time the window appears. Render draws the contents.
type Panel struct {
	Name   string
	Pos    imgui.Vec2
	Size   imgui.Vec2
	Render func()
}

func (p *Panel) draw() {
	imgui.SetNextWindowPosV(p.Pos, imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(p.Size, imgui.CondOnce)
	if imgui.BeginV(p.Name, nil, imgui.WindowFlagsNone) {
		p.Render()
	}
	imgui.End()
}

// InputCapture records whether ImGui wants the mouse or keyboard this
// frame. Frontends skip board input while it is set.
type InputCapture struct {
	Mouse    bool
	Keyboard bool
}

// PanelSystem refreshes InputCapture and defers every panel's render to
// the end of the frame.
type PanelSystem struct {
	Panels ecs.Query[struct{ *Panel }]
	Input  ecs.Singleton[InputCapture]
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	input := s.Input.Get()
	input.Mouse = io.WantCaptureMouse()
	input.Keyboard = io.WantCaptureKeyboard()

	for p := range s.Panels.Values() {
		if p.Panel.Render != nil {
			frame.Commands.Defer(p.Panel.draw)
		}
	}
}

// UI is the overlay's own storage and scheduler.
type UI struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[InputCapture]
}

func NewUI() *UI {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Panel](registry)
	storage := ecs.NewStorage(registry)

	ui := &UI{
		storage: storage,
		input:   ecs.NewSingleton(storage, InputCapture{}),
	}
	ui.scheduler = ecs.NewScheduler(storage)
	ui.scheduler.Register(&PanelSystem{})
	return ui
}

// Add registers a window. Windows render in the order they were added.
func (u *UI) Add(name string, pos, size imgui.Vec2, render func()) {
	u.storage.Spawn(Panel{Name: name, Pos: pos, Size: size, Render: render})
}

// Titles returns the window titles in render order.
func (u *UI) Titles() []string {
	var titles []string
	for p := range ecs.NewView[struct{ *Panel }](u.storage).Values() {
		titles = append(titles, p.Panel.Name)
	}
	return titles
}

// Frame runs the panels. It must be called between the backend's
// BeginFrame and EndFrame.
func (u *UI) Frame(dt float64) {
	u.scheduler.Once(dt)
}

// Input returns the capture state from the last Frame.
func (u *UI) Input() InputCapture {
	return *u.input.Get()
}
