// Package ecs is a small archetype entity-component store with cached
// queries, singleton state, deferred commands and an ordered scheduler.
package ecs

import "fmt"

// EntityId encodes the archetype ID (upper 32 bits), a slot generation
// (12 bits) and the slot index within that archetype (lower 20 bits). The
// generation changes every time a slot is freed, so an id kept after its
// entity was deleted never refers to a later occupant of the same slot.
type EntityId uint64

const (
	indexBits      = 20
	generationBits = 12

	// MaxIndex is the largest slot index an archetype can hand out.
	MaxIndex      = 1<<indexBits - 1
	generationMax = 1<<generationBits - 1
)

// NewEntityId creates an EntityId from an archetype ID, a slot generation
// and a slot index. Generation and index are truncated to their widths.
func NewEntityId(archetypeId uint32, generation uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 |
		uint64(generation&generationMax)<<indexBits |
		uint64(index&MaxIndex))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e>>indexBits) & generationMax
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & MaxIndex
}

func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d.%d", e.ArchetypeId(), e.Index(), e.Generation())
}
