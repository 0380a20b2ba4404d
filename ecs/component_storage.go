package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// iComponentStorage is an interface for a type-erased component storage.
// Slots are addressed by entity index.
type iComponentStorage interface {
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
}

// MaxKinds is the number of distinct component kinds a registry can hold.
// Each kind owns one bit of an entity's presence mask.
const MaxKinds = 256

type kindInfo struct {
	typ     reflect.Type
	name    string
	bit     uint32
	factory func() iComponentStorage
}

// ComponentRegistry manages component kind registration for an ECS instance.
// A registry may be shared by several Storage instances; once any of them
// holds an entity the registry is sealed against shape changes.
type ComponentRegistry struct {
	kinds  map[reflect.Type]*kindInfo
	byName map[string]*kindInfo
	order  []*kindInfo
	sealed bool
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		kinds:  make(map[reflect.Type]*kindInfo),
		byName: make(map[string]*kindInfo),
	}
}

// RegisterComponent declares T as a component kind. It must be called before
// any entity holds a T. Registering the same type twice is a no-op.
//
// Kinds are named by their Go type name. Registering a different type under a
// name that is already taken replaces the earlier kind while the registry is
// empty, and fails with ErrKindShapeMismatch once entities exist.
func RegisterComponent[T any](r *ComponentRegistry) error {
	t := reflect.TypeFor[T]()
	if err := validateKind(t); err != nil {
		return err
	}
	if _, ok := r.kinds[t]; ok {
		return nil
	}

	name := t.String()
	factory := func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}

	if prev, ok := r.byName[name]; ok {
		if r.sealed {
			return eris.Wrapf(ErrKindShapeMismatch, "kind %q", name)
		}
		delete(r.kinds, prev.typ)
		prev.typ = t
		prev.factory = factory
		r.kinds[t] = prev
		return nil
	}

	if len(r.order) >= MaxKinds {
		return eris.Wrapf(ErrTooManyKinds, "kind %q", name)
	}

	info := &kindInfo{
		typ:     t,
		name:    name,
		bit:     uint32(len(r.order)),
		factory: factory,
	}
	r.kinds[t] = info
	r.byName[name] = info
	r.order = append(r.order, info)
	return nil
}

// Kinds returns the registered component types in registration order.
func (r *ComponentRegistry) Kinds() []reflect.Type {
	types := make([]reflect.Type, len(r.order))
	for i, info := range r.order {
		types[i] = info.typ
	}
	return types
}

// Registered reports whether t is a registered component kind.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.kinds[t]
	return ok
}

func (r *ComponentRegistry) lookup(t reflect.Type) (*kindInfo, error) {
	info, ok := r.kinds[t]
	if !ok {
		return nil, eris.Wrapf(ErrUnregisteredKind, "kind %s", t)
	}
	return info, nil
}

func validateKind(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return eris.Wrapf(ErrInvalidComponent, "%s is a %s", t, t.Kind())
	}
	return nil
}

// componentType resolves the kind of a component value, accepting both T and *T.
func componentType(component any) (reflect.Type, error) {
	if component == nil {
		return nil, eris.Wrap(ErrInvalidComponent, "nil component")
	}
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		if reflect.ValueOf(component).IsNil() {
			return nil, eris.Wrapf(ErrInvalidComponent, "nil %s", t)
		}
		t = t.Elem()
	}
	if err := validateKind(t); err != nil {
		return nil, err
	}
	return t, nil
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks,
// one slot per entity index, with a presence flag per slot. Blocks are
// allocated individually so pointers handed out by Get survive growth.
type genericComponentStorage[T any] struct {
	blocks []*[genericBlockSize]T
	filled [][genericBlockSize]bool
	count  int
}

// Set writes a component into the slot for index, overwriting any previous value.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if index < 0 {
		return false
	}

	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, [genericBlockSize]bool{})
	}

	if !cs.filled[blockIdx][slotIdx] {
		cs.count++
	}
	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.filled) {
		return false
	}

	return cs.filled[blockIdx][index%genericBlockSize]
}

// Len returns the number of filled slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}
