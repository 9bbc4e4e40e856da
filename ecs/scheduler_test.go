package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/tetris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
	LastDelta    float64
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.LastDelta = frame.DeltaTime
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}
}

type HealthSystem struct {
	Entities    ecs.Query[struct{ *Health }]
	TotalHealth int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

type spawnOnceSystem struct {
	Counter ecs.Singleton[Health]
	done    bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Current++
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
}

func TestSchedulerOnce(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	health := &HealthSystem{}
	scheduler.Register(movement)
	scheduler.Register(health)

	id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Health{Current: 50})
	storage.Spawn(Health{Current: 75})

	scheduler.Once(0.5)
	scheduler.Once(0.25)

	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, 0.25, movement.LastDelta)
	assert.Equal(t, Position{X: 2, Y: 4}, *ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, 125, health.TotalHealth)

	storage.Spawn(Health{Current: 25})
	scheduler.Once(0)
	assert.Equal(t, 150, health.TotalHealth)
}

func TestSchedulerCommandsFlushAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	ecs.NewSingleton[Health](storage)
	spawner := &spawnOnceSystem{}
	movement := &MovementSystem{}
	scheduler.Register(spawner)
	scheduler.Register(movement)

	scheduler.Once(1)
	assert.Equal(t, 0, movement.Entities.Len(), "spawn is deferred until the end of the frame")

	scheduler.Once(1)
	assert.Equal(t, 1, movement.Entities.Len())
	assert.Equal(t, 2, spawner.Counter.Get().Current)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&HealthSystem{})

	stats := scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for range 3 {
		scheduler.Once(0)
	}

	stats = scheduler.Stats()
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "HealthSystem", stats.Systems[1].Name)
	for _, sys := range stats.Systems {
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.MaxDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}

	assert.Positive(t, movement.ExecuteCount)
}
