// Package debugui provides immediate-mode GUI integration for the component
// store using Dear ImGui. It manages ImGui rendering and input state through
// components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tickworld/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions. It also updates the ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// RegisterComponents declares the debug UI kinds on registry.
func RegisterComponents(registry *ecs.ComponentRegistry) error {
	for _, register := range []func(*ecs.ComponentRegistry) error{
		ecs.RegisterComponent[ImguiItem],
		ecs.RegisterComponent[EntityBrowser],
		ecs.RegisterComponent[ComponentInspector],
		ecs.RegisterComponent[PerformanceStats],
		ecs.RegisterComponent[QueryDebugger],
	} {
		if err := register(registry); err != nil {
			return err
		}
	}
	return nil
}

// Install registers the debug UI kinds, spawns the standard windows and
// appends ImguiSystem and PanelSystem to scheduler. Both systems run after
// every system already registered.
func Install(scheduler *ecs.Scheduler) error {
	storage := scheduler.Storage()
	if err := RegisterComponents(storage.Registry()); err != nil {
		return err
	}
	storage.AddSingleton(ImguiInputState{})

	for _, window := range []any{
		NewEntityBrowser(100),
		NewComponentInspector(),
		NewPerformanceStats(120),
		NewQueryDebugger(),
	} {
		if _, err := storage.Spawn(window); err != nil {
			return err
		}
	}

	if err := scheduler.Register(&ImguiSystem{}); err != nil {
		return err
	}
	return scheduler.Register(&PanelSystem{Scheduler: scheduler})
}

// PanelSystem draws the store inspection windows. The component inspector
// follows the entity selected in the first entity browser.
type PanelSystem struct {
	Scheduler *ecs.Scheduler

	Browsers   ecs.Query[struct{ *EntityBrowser }]
	Inspectors ecs.Query[struct{ *ComponentInspector }]
	Stats      ecs.Query[struct{ *PerformanceStats }]
	Queries    ecs.Query[struct{ *QueryDebugger }]
}

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	var selected ecs.EntityId

	for row := range p.Browsers.Values() {
		browser := row.EntityBrowser
		if selected == 0 {
			selected = browser.SelectedEntity()
		}
		frame.Commands.Defer(func() { browser.Render(storage) })
	}
	for row := range p.Inspectors.Values() {
		inspector := row.ComponentInspector
		frame.Commands.Defer(func() { inspector.Render(storage, selected) })
	}
	for row := range p.Stats.Values() {
		stats := row.PerformanceStats
		dt := frame.DeltaTime
		frame.Commands.Defer(func() { stats.Render(storage, p.Scheduler, dt) })
	}
	for row := range p.Queries.Values() {
		debugger := row.QueryDebugger
		frame.Commands.Defer(func() { debugger.Render(storage) })
	}
}
