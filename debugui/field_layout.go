package debugui

import (
	"reflect"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tickworld/render"
)

// FieldKind selects the widget the component inspector draws for a field.
type FieldKind uint8

const (
	// FieldValue is drawn by kind: numbers, strings, nested structs.
	FieldValue FieldKind = iota
	// FieldVec3 is an mgl64.Vec3 drawn as one three-float row.
	FieldVec3
	// FieldHandle is a render.Handle; its Transform is shown and editable.
	FieldHandle
)

var (
	vec3Type   = reflect.TypeFor[mgl64.Vec3]()
	handleType = reflect.TypeFor[render.Handle]()
)

// Field is one exported field of a component kind.
type Field struct {
	Name  string
	Index int
	Kind  FieldKind
	// Deref is set for pointers to plain values. Handles are never dereferenced.
	Deref bool
}

// FieldLayouts memoizes the inspectable fields of component kinds.
type FieldLayouts struct {
	mu      sync.Mutex
	layouts map[reflect.Type][]Field
}

func NewFieldLayouts() *FieldLayouts {
	return &FieldLayouts{
		layouts: make(map[reflect.Type][]Field),
	}
}

// Of returns the exported fields of t in declaration order. Kinds that are
// not structs have no fields.
func (l *FieldLayouts) Of(t reflect.Type) []Field {
	l.mu.Lock()
	defer l.mu.Unlock()

	if fields, ok := l.layouts[t]; ok {
		return fields
	}
	fields := layoutOf(t)
	l.layouts[t] = fields
	return fields
}

func layoutOf(t reflect.Type) []Field {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, classify(sf, i))
	}
	return fields
}

func classify(sf reflect.StructField, index int) Field {
	f := Field{Name: sf.Name, Index: index}
	switch {
	case sf.Type == vec3Type:
		f.Kind = FieldVec3
	case sf.Type.Implements(handleType):
		f.Kind = FieldHandle
	case sf.Type.Kind() == reflect.Pointer && sf.Type.Elem() == vec3Type:
		f.Kind, f.Deref = FieldVec3, true
	case sf.Type.Kind() == reflect.Pointer:
		f.Deref = true
	}
	return f
}

// toFloat32 narrows v for ImGui's float widgets.
func toFloat32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func fromFloat32(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

var layouts = NewFieldLayouts()
