package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order for stable iteration.
	order      []*Archetype
	singletons map[reflect.Type]any
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components. Components may
// be passed by value or by pointer; they are copied either way.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := componentTypes(components)
	archetype := s.archetypeFor(types)
	return archetype.spawn(components)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeId(types)
	if archetype, ok := s.archetypes.Get(id); ok {
		return archetype
	}

	archetype := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// Delete removes the entity. It reports false if the entity was not alive.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.remove(id)
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.live(id)
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil when the entity is gone or lacks the component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.live(id) {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// Count returns the number of live entities across all archetypes.
func (s *Storage) Count() int {
	n := 0
	for _, archetype := range s.order {
		n += archetype.count
	}
	return n
}

// Archetypes returns every archetype in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Archetype returns the archetype with the given id, or nil.
func (s *Storage) Archetype(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton is overwritten in place so outstanding pointers see the update.
func (s *Storage) AddSingleton(value any) {
	if value == nil {
		panic("nil singleton")
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if existing, ok := s.singletons[v.Type()]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = ptr.Interface()
}

// singleton returns the stored *T for type t, or nil.
func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// ReadSingleton points *target at the stored singleton of its element type.
// target must be a pointer to a pointer, e.g. **GameState. It reports
// whether the singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Pointer {
		panic(fmt.Sprintf("ReadSingleton target must be a pointer to a pointer, got %T", target))
	}

	stored, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(stored))
	return true
}

// RemoveSingleton deletes the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
