package ecs_test

import (
	"testing"

	"github.com/plus3/tetris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Label("old"))

	var order []string
	cmds := ecs.NewCommands()
	cmds.Defer(func() {
		order = append(order, "defer")
		assert.False(t, storage.Alive(old), "deletes run before defers")
		assert.Equal(t, 1, storage.Count(), "spawns run before defers")
	})
	cmds.Spawn(Label("new"))
	cmds.Delete(old)
	assert.Equal(t, 3, cmds.Pending())

	spawned := cmds.Flush(storage)
	require.Len(t, spawned, 1)
	assert.Equal(t, Label("new"), *ecs.ReadComponent[Label](storage, spawned[0]))
	assert.Equal(t, []string{"defer"}, order)
	assert.Equal(t, 0, cmds.Pending())
}

func TestCommandsDeleteThenSpawnReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Health{Current: 1})

	cmds := ecs.NewCommands()
	cmds.Delete(old)
	cmds.Spawn(Health{Current: 2})
	spawned := cmds.Flush(storage)

	require.Len(t, spawned, 1)
	assert.Equal(t, old.Index(), spawned[0].Index())
	assert.NotEqual(t, old, spawned[0])
	assert.False(t, storage.Alive(old))
	assert.Equal(t, 2, ecs.ReadComponent[Health](storage, spawned[0]).Current)
}

func TestCommandsDeferQueuesForNextFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmds := ecs.NewCommands()
	cmds.Defer(func() { cmds.Spawn(Marker{}) })

	cmds.Flush(storage)
	assert.Equal(t, 0, storage.Count())
	assert.Equal(t, 1, cmds.Pending())

	cmds.Flush(storage)
	assert.Equal(t, 1, storage.Count())
	assert.Equal(t, 0, cmds.Pending())
}

func TestCommandsDeferQueuedDeleteSurvivesFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Marker{})
	cmds := ecs.NewCommands()
	cmds.Defer(func() { cmds.Delete(id) })

	cmds.Flush(storage)
	assert.True(t, storage.Alive(id))

	cmds.Flush(storage)
	assert.False(t, storage.Alive(id))
}
