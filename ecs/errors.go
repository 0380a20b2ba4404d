package ecs

import "github.com/rotisserie/eris"

var (
	// ErrUnknownEntity is returned when an operation references an id that was
	// never spawned or has been despawned.
	ErrUnknownEntity = eris.New("unknown entity")

	// ErrUnregisteredKind is returned when a component type was not registered
	// with the storage's ComponentRegistry.
	ErrUnregisteredKind = eris.New("component kind not registered")

	// ErrKindShapeMismatch is returned when a kind name is re-registered with a
	// different type after entities already exist.
	ErrKindShapeMismatch = eris.New("component kind re-registered with a different shape")

	// ErrTooManyKinds is returned when the registry has no presence bit left.
	ErrTooManyKinds = eris.New("too many component kinds")

	// ErrInvalidComponent is returned for values that cannot be stored as
	// components (nil, maps, channels, functions).
	ErrInvalidComponent = eris.New("invalid component value")

	// ErrNegativeDelta is returned when a tick is requested with dt < 0.
	ErrNegativeDelta = eris.New("negative tick delta")
)
