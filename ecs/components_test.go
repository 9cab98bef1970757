package ecs_test

import "github.com/plus3/galton/ecs"

// Test components
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Radius float64

type Label string

type Settled struct {
	Bin int
}

type Obstacle struct{}

type Counter struct {
	Hits int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Radius](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Settled](registry)
	ecs.RegisterComponent[Obstacle](registry)
	return registry
}

type moving struct {
	*Position
	*Velocity
}
