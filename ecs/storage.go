package ecs

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Storage owns every entity and component of one world. Components live in
// one arena per kind indexed by entity id; a presence mask per entity answers
// AND queries.
type Storage struct {
	registry   *ComponentRegistry
	storages   map[reflect.Type]iComponentStorage
	masks      []mask.Mask
	alive      []bool
	live       int
	singletons map[reflect.Type]*singletonEntry
	logger     zerolog.Logger
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithStorageLogger sets the logger used for setup diagnostics.
func WithStorageLogger(logger zerolog.Logger) StorageOption {
	return func(s *Storage) {
		s.logger = logger
	}
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry, opts ...StorageOption) *Storage {
	s := &Storage{
		registry:   registry,
		storages:   make(map[reflect.Type]iComponentStorage),
		masks:      make([]mask.Mask, 1, 64),
		alive:      make([]bool, 1, 64),
		singletons: make(map[reflect.Type]*singletonEntry),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn allocates a fresh entity and attaches the given components. Every
// component kind is validated before the id is allocated, so a failed Spawn
// leaves the storage untouched.
func (s *Storage) Spawn(components ...any) (EntityId, error) {
	infos := make([]*kindInfo, len(components))
	for i, component := range components {
		t, err := componentType(component)
		if err != nil {
			return 0, err
		}
		info, err := s.registry.lookup(t)
		if err != nil {
			return 0, eris.Wrap(err, "spawn")
		}
		infos[i] = info
	}

	id := EntityId(len(s.masks))
	s.masks = append(s.masks, mask.Mask{})
	s.alive = append(s.alive, true)
	s.live++
	s.registry.sealed = true

	for i, component := range components {
		s.set(id, infos[i], component)
	}

	s.logger.Trace().Uint32("entity", uint32(id)).Int("components", len(components)).Msg("spawned entity")
	return id, nil
}

// Attach sets a component on an existing entity. Attaching a kind the entity
// already holds overwrites the previous value.
func (s *Storage) Attach(id EntityId, component any) error {
	if !s.Alive(id) {
		return eris.Wrapf(ErrUnknownEntity, "attach to entity %d", id)
	}
	t, err := componentType(component)
	if err != nil {
		return err
	}
	info, err := s.registry.lookup(t)
	if err != nil {
		return eris.Wrapf(err, "attach to entity %d", id)
	}
	s.set(id, info, component)
	return nil
}

// Detach removes the component of the given kind from an entity. Detaching a
// kind the entity does not hold is not an error.
func (s *Storage) Detach(id EntityId, compType reflect.Type) error {
	if !s.Alive(id) {
		return eris.Wrapf(ErrUnknownEntity, "detach from entity %d", id)
	}
	info, err := s.registry.lookup(compType)
	if err != nil {
		return eris.Wrapf(err, "detach from entity %d", id)
	}
	if storage, ok := s.storages[info.typ]; ok {
		storage.Delete(id.Index())
	}
	s.masks[id].Unmark(info.bit)
	return nil
}

// Despawn removes all data related to the entity. The id is retired and will
// never be handed out again.
func (s *Storage) Despawn(id EntityId) error {
	if !s.Alive(id) {
		return eris.Wrapf(ErrUnknownEntity, "despawn entity %d", id)
	}
	for _, storage := range s.storages {
		storage.Delete(id.Index())
	}
	s.masks[id] = mask.Mask{}
	s.alive[id] = false
	s.live--
	return nil
}

// Alive reports whether id refers to a spawned, not yet despawned entity.
func (s *Storage) Alive(id EntityId) bool {
	return id.Valid() && id.Index() < len(s.alive) && s.alive[id]
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.live
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil when the entity does not hold it.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	storage, ok := s.storages[compType]
	if !ok {
		return nil
	}
	return storage.Get(id.Index())
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	storage, ok := s.storages[compType]
	return ok && storage.Has(id.Index())
}

// KindsOf returns the component types held by an entity in registration order.
func (s *Storage) KindsOf(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}
	var types []reflect.Type
	for _, info := range s.registry.order {
		if storage, ok := s.storages[info.typ]; ok && storage.Has(id.Index()) {
			types = append(types, info.typ)
		}
	}
	return types
}

// Query returns every live entity holding all of the given kinds, in
// ascending id order. The result is a fresh slice; later structural changes
// do not affect it.
func (s *Storage) Query(types ...reflect.Type) ([]EntityId, error) {
	required, err := s.maskFor(types)
	if err != nil {
		return nil, err
	}
	return s.collect(required, nil), nil
}

// Entities returns every live entity in ascending id order.
func (s *Storage) Entities() []EntityId {
	return s.collect(mask.Mask{}, nil)
}

func (s *Storage) collect(required mask.Mask, dst []EntityId) []EntityId {
	for i := 1; i < len(s.masks); i++ {
		if s.alive[i] && s.masks[i].ContainsAll(required) {
			dst = append(dst, EntityId(i))
		}
	}
	return dst
}

func (s *Storage) matches(id EntityId, required mask.Mask) bool {
	return s.Alive(id) && s.masks[id].ContainsAll(required)
}

func (s *Storage) maskFor(types []reflect.Type) (mask.Mask, error) {
	var m mask.Mask
	for _, t := range types {
		info, err := s.registry.lookup(t)
		if err != nil {
			return mask.Mask{}, eris.Wrap(err, "query")
		}
		m.Mark(info.bit)
	}
	return m, nil
}

func (s *Storage) storageFor(info *kindInfo) iComponentStorage {
	storage, ok := s.storages[info.typ]
	if !ok {
		storage = info.factory()
		s.storages[info.typ] = storage
	}
	return storage
}

func (s *Storage) set(id EntityId, info *kindInfo, component any) {
	s.storageFor(info).Set(id.Index(), component)
	s.masks[id].Mark(info.bit)
}

// ComponentReader is the read side of a Storage used by the typed accessors.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a copy of the entity's T component.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) (T, bool) {
	if ptr := MutableComponent[T](reader, entityId); ptr != nil {
		return *ptr, true
	}
	var zero T
	return zero, false
}

// MutableComponent returns a pointer to the entity's T component, or nil when
// the entity does not hold one. Writes through the pointer update the store.
func MutableComponent[T any](reader ComponentReader, entityId EntityId) *T {
	component := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if component == nil {
		return nil
	}
	return component.(*T)
}
