package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/render"
)

// ComponentInspector shows and edits the components of one entity.
type ComponentInspector struct {
	selectedEntityId ecs.EntityId
}

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if !ci.selectedEntityId.Valid() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !storage.Alive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d was despawned", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Separator()

	for _, compType := range storage.KindsOf(ci.selectedEntityId) {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderComponent(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws every exported field of val. val must be
// addressable; edits are written straight into the store.
func renderComponent(val reflect.Value) {
	for _, field := range layouts.Of(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Kind == FieldHandle {
			renderHandle(field.Name, fieldVal)
			continue
		}
		if field.Deref {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		if field.Kind == FieldVec3 {
			renderVec3(field.Name, fieldVal)
			continue
		}
		renderField(field.Name, fieldVal)
	}
}

// renderHandle shows the transform behind a render handle. Edits land in the
// handle and are overwritten by the next tick of the systems that own it.
func renderHandle(name string, val reflect.Value) {
	if val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}
	handle := val.Interface().(render.Handle)
	if !imgui.TreeNodeStr(name) {
		return
	}
	if mesh, ok := handle.(*render.Mesh); ok {
		imgui.Text(fmt.Sprintf("Mesh: %s (%s)", mesh.Label, mesh.Shape))
	}
	t := handle.Transform()
	editVec3(name+".Position", "Position", &t.Position)
	editVec3(name+".Rotation", "Rotation", &t.Rotation)
	editVec3(name+".Scale", "Scale", &t.Scale)
	imgui.TreePop()
}

func renderVec3(name string, val reflect.Value) {
	if !val.CanAddr() {
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		return
	}
	editVec3(name, name, val.Addr().Interface().(*mgl64.Vec3))
}

func editVec3(id, label string, v *mgl64.Vec3) {
	f := toFloat32(*v)
	inputLabel(label)
	if imgui.DragFloat3V(fmt.Sprintf("##%s", id), &f, 0.05, 0, 0, "%.3f", imgui.SliderFlagsNone) {
		*v = fromFloat32(f)
	}
}

func renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		if inputLabel(name); imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		if inputLabel(name); imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		if inputLabel(name); imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		if inputLabel(name); imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderComponent(val)
			imgui.TreePop()
		}

	case reflect.Array:
		if imgui.TreeNodeStr(name) {
			for i := 0; i < val.Len(); i++ {
				renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Interface:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		imgui.Text(fmt.Sprintf("%s: %T", name, val.Interface()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func inputLabel(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
