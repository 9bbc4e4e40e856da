package ecs_test

import "github.com/plus3/tetris/ecs"

type Position struct {
	X, Y int
}

type Velocity struct {
	DX, DY int
}

type Health struct {
	Current int
	Max     int
}

type Label string

type Marker struct{}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Marker](registry)
	return registry
}
