package ecs

import "github.com/rs/zerolog"

// LogComponents writes every registered component kind, with its presence
// bit, as a single event.
func LogComponents(logger *zerolog.Logger, registry *ComponentRegistry, level zerolog.Level) {
	arr := zerolog.Arr()
	for _, info := range registry.order {
		arr = arr.Dict(zerolog.Dict().
			Int("component_bit", int(info.bit)).
			Str("component_name", info.name))
	}
	logger.WithLevel(level).
		Int("total_components", len(registry.order)).
		Array("components", arr).
		Msg("registered components")
}

// LogSystems writes the scheduler's systems in execution order as a single event.
func LogSystems(logger *zerolog.Logger, scheduler *Scheduler, level zerolog.Level) {
	arr := zerolog.Arr()
	names := scheduler.Systems()
	for _, name := range names {
		arr = arr.Str(name)
	}
	logger.WithLevel(level).
		Int("total_systems", len(names)).
		Array("systems", arr).
		Msg("registered systems")
}

// LogEntity writes one entity and the kinds it holds.
func LogEntity(logger *zerolog.Logger, storage *Storage, id EntityId, level zerolog.Level) {
	arr := zerolog.Arr()
	for _, t := range storage.KindsOf(id) {
		arr = arr.Str(t.String())
	}
	logger.WithLevel(level).
		Uint32("entity_id", uint32(id)).
		Bool("alive", storage.Alive(id)).
		Array("components", arr).
		Msg("entity")
}
