package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tickworld/ecs"
)

// QueryDebugger runs an ad-hoc AND query over kinds picked in the window.
type QueryDebugger struct {
	selected map[reflect.Type]bool
}

func NewQueryDebugger() QueryDebugger {
	return QueryDebugger{
		selected: make(map[reflect.Type]bool),
	}
}

// Toggle flips whether t takes part in the query.
func (qd *QueryDebugger) Toggle(t reflect.Type) {
	if qd.selected[t] {
		delete(qd.selected, t)
		return
	}
	qd.selected[t] = true
}

// Run evaluates the current selection against storage. Selected kinds are
// taken in registration order. An empty selection matches nothing.
func (qd *QueryDebugger) Run(storage *ecs.Storage) ([]reflect.Type, []ecs.EntityId, error) {
	var types []reflect.Type
	for _, t := range storage.Registry().Kinds() {
		if qd.selected[t] {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, nil, nil
	}
	ids, err := storage.Query(types...)
	return types, ids, err
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = make(map[reflect.Type]bool)
	}

	for _, t := range storage.Registry().Kinds() {
		selected := qd.selected[t]
		if imgui.Checkbox(t.String(), &selected) {
			qd.Toggle(t)
		}
	}

	imgui.Separator()

	types, ids, err := qd.Run(storage)
	switch {
	case err != nil:
		imgui.Text(fmt.Sprintf("Query failed: %v", err))
	case len(types) == 0:
		imgui.Text("No component types selected")
	default:
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		imgui.Text(fmt.Sprintf("Query: %s", strings.Join(names, " AND ")))
		imgui.Text(fmt.Sprintf("Matching Entities: %d", len(ids)))

		if imgui.TreeNodeStr("Entities") {
			for _, id := range ids {
				imgui.BulletText(fmt.Sprintf("%d", id))
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}
