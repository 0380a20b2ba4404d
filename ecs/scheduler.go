package ecs

import (
	"context"
	"math"
	"reflect"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/driver"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type queryInitializer interface {
	Init(storage *Storage) error
}

type queryExecutor interface {
	Execute()
}

// Scheduler executes registered systems in registration order, one tick at a
// time. The order is fixed up front; a tick never reorders or skips systems.
type Scheduler struct {
	storage     *Storage
	systems     []System
	queries     []queryExecutor
	systemStats []*systemStatsInternal
	clock       *Singleton[Clock]
	commands    *Commands
	logger      zerolog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for registration and tick diagnostics.
func WithLogger(logger zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage:  storage,
		systems:  make([]System, 0),
		clock:    NewSingleton[Clock](storage),
		commands: newCommands(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the storage the scheduler ticks.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a system to the execution order and initializes its
// Query and Singleton fields. A Query over an unregistered kind fails here,
// before any tick runs.
func (s *Scheduler) Register(system System) error {
	name := systemName(system)
	queries, err := s.initializeQueries(system)
	if err != nil {
		return eris.Wrapf(err, "register system %s", name)
	}

	s.systems = append(s.systems, system)
	s.queries = append(s.queries, queries...)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(math.MaxInt64),
	})

	s.logger.Debug().Str("system", name).Int("order", len(s.systems)-1).Msg("registered system")
	return nil
}

// Systems returns the registered system names in execution order.
func (s *Scheduler) Systems() []string {
	names := make([]string, len(s.systemStats))
	for i, stats := range s.systemStats {
		names[i] = stats.name
	}
	return names
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}

func (s *Scheduler) initializeQueries(system System) ([]queryExecutor, error) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return nil, nil
	}
	systemValue = systemValue.Elem()
	if systemValue.Kind() != reflect.Struct {
		return nil, nil
	}

	systemType := systemValue.Type()
	var queries []queryExecutor

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		initializer, ok := field.Addr().Interface().(queryInitializer)
		if !ok {
			continue
		}
		if err := initializer.Init(s.storage); err != nil {
			return nil, eris.Wrapf(err, "field %s", systemType.Field(i).Name)
		}
		if executor, ok := initializer.(queryExecutor); ok {
			queries = append(queries, executor)
		}
	}

	return queries, nil
}

// Once executes one tick with the given delta, advancing the scheduler's own
// clock by dt.
func (s *Scheduler) Once(dt float64) error {
	return s.Step(dt, s.clock.Get().Time+dt*1000)
}

// Tick implements driver.Ticker.
func (s *Scheduler) Tick(dt, timeMillis float64) error {
	return s.Step(dt, timeMillis)
}

// Step executes one tick: every query snapshots its entities, then all
// systems run in registration order, then queued commands are flushed.
// dt must not be negative. A zero dt runs the systems without moving
// anything, which lets a caller push initial state to render handles.
func (s *Scheduler) Step(dt, timeMillis float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return eris.Wrapf(ErrNegativeDelta, "dt=%v", dt)
	}

	clock := s.clock.Get()
	clock.Ticks++
	clock.Elapsed += dt
	clock.Delta = dt
	clock.Time = timeMillis

	for _, query := range s.queries {
		query.Execute()
	}

	frame := &UpdateFrame{
		DeltaTime: dt,
		Time:      timeMillis,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	if err := s.commands.Flush(s.storage); err != nil {
		s.logger.Warn().Err(err).Int64("tick", clock.Ticks).Msg("command flush failed")
		return eris.Wrapf(err, "flush commands for tick %d", clock.Ticks)
	}
	return nil
}

// Run executes ticks on a timer with the measured wall-clock delta until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	return driver.New(s, driver.WithLogger(s.logger)).Run(ctx, interval)
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
