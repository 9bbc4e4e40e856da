package ecs_test

import (
	"testing"

	"github.com/plus3/tetris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMatchesSupersets(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	b := storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Label("b"))
	storage.Spawn(Position{X: 3})

	q := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)
	q.Execute()

	seen := map[ecs.EntityId]int{}
	for id, row := range q.Iter() {
		assert.Equal(t, id, row.EntityId)
		seen[id] = row.Position.X
	}
	assert.Equal(t, map[ecs.EntityId]int{a: 1, b: 2}, seen)
	assert.Equal(t, 2, q.Len())
}

func TestQueryRowsPointIntoStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2, DY: 3})

	q := ecs.NewQuery[struct {
		Pos *Position
		Vel *Velocity
	}](storage)
	q.Execute()

	for row := range q.Values() {
		row.Pos.X += row.Vel.DX
		row.Pos.Y += row.Vel.DY
	}

	assert.Equal(t, Position{X: 3, Y: 3}, *ecs.ReadComponent[Position](storage, id))
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Health }](storage)

	q.Execute()
	assert.Equal(t, 0, q.Len())

	storage.Spawn(Health{Current: 1})
	storage.Spawn(Health{Current: 2}, Marker{})
	q.Execute()
	assert.Equal(t, 2, q.Len())

	_, first, ok := q.First()
	require.True(t, ok)
	assert.Equal(t, 1, first.Health.Current)
}

func TestQuerySkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Health{Current: 1})
	storage.Spawn(Health{Current: 2})
	storage.Delete(a)

	q := ecs.NewQuery[struct{ *Health }](storage)
	q.Execute()

	require.Equal(t, 1, q.Len())
	for row := range q.Values() {
		assert.Equal(t, 2, row.Health.Current)
	}
}

func TestQueryPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	q := ecs.NewQuery[struct{ *Health }](storage)
	assert.Panics(t, func() { q.Iter() })
	assert.Panics(t, func() { q.Values() })

	assert.Panics(t, func() { ecs.NewQuery[int](storage) })
	assert.Panics(t, func() { ecs.NewQuery[struct{ Health }](storage) })
	assert.Panics(t, func() { ecs.NewQuery[struct{ ecs.EntityId }](storage) })
	assert.Panics(t, func() {
		ecs.NewQuery[struct {
			health *Health
		}](storage)
	})
}

func TestQueryFirstEmpty(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Marker }](storage)
	q.Execute()

	_, _, ok := q.First()
	assert.False(t, ok)
}
