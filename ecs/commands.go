package ecs

// Commands buffers structural changes made while systems run. They are
// applied by Flush at the end of the frame so queries never observe a
// half-updated storage.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after all spawns and deletes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions, and resets
// the buffer. It returns the ids of the spawned entities in queue order.
func (c *Commands) Flush(storage *Storage) []EntityId {
	deletes, spawns, defers := c.deletes, c.spawns, c.defers
	c.deletes, c.spawns, c.defers = nil, nil, nil

	for _, id := range deletes {
		storage.Delete(id)
	}

	var spawned []EntityId
	for _, components := range spawns {
		spawned = append(spawned, storage.Spawn(components...))
	}

	// Work queued by a deferred function waits for the next Flush.
	for _, fn := range defers {
		fn()
	}

	return spawned
}
