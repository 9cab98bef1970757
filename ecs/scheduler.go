package ecs

import (
	"reflect"
	"time"
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

type initializer interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   *systemStatsInternal
}

// Scheduler runs systems in registration order. The order is part of the
// contract: a system sees every mutation made by the systems before it.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends a system and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// initializeFields binds every exported field that has an Init(*Storage)
// method and returns the ones that also need a per-frame Execute.
func (s *Scheduler) initializeFields(system System) []executor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		fieldPtr := field.Addr().Interface()
		binder, ok := fieldPtr.(initializer)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := fieldPtr.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := rs.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
