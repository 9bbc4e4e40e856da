package ecs

import (
	"iter"
	"reflect"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly one set of component types.
// Slots are reused after deletion; slot indices never move. Each slot keeps a
// generation that is bumped when it is freed.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	index   map[reflect.Type]int

	alive       []bool
	generations []uint32
	free        []uint32
	count       int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		index:   make(map[reflect.Type]int, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
		a.index[t] = i
	}
	return a
}

// spawn writes components into a free slot and returns the new entity's id.
// The components must match the archetype's types one to one.
func (a *Archetype) spawn(components []any) EntityId {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[slot] = true
	} else {
		if len(a.alive) > MaxIndex {
			panic("archetype is full")
		}
		slot = uint32(len(a.alive))
		a.alive = append(a.alive, true)
		a.generations = append(a.generations, 0)
	}

	for _, comp := range components {
		a.columns[a.index[componentType(comp)]].set(int(slot), comp)
	}
	a.count++
	return a.entityId(slot)
}

func (a *Archetype) entityId(slot uint32) EntityId {
	return NewEntityId(a.id, a.generations[slot], slot)
}

func (a *Archetype) remove(id EntityId) bool {
	if !a.live(id) {
		return false
	}
	slot := id.Index()
	for _, col := range a.columns {
		col.zero(int(slot))
	}
	a.alive[slot] = false
	a.generations[slot] = (a.generations[slot] + 1) & generationMax
	a.free = append(a.free, slot)
	a.count--
	return true
}

// live reports whether id names the current occupant of its slot.
func (a *Archetype) live(id EntityId) bool {
	slot := int(id.Index())
	return slot < len(a.alive) && a.alive[slot] && a.generations[slot] == id.Generation()
}

// component returns a pointer to the slot's component of type t, or nil.
// The slot must be live.
func (a *Archetype) component(slot uint32, t reflect.Type) any {
	i, ok := a.index[t]
	if !ok {
		return nil
	}
	return a.columns[i].get(int(slot))
}

// each calls fn with every live slot in index order until fn returns false.
func (a *Archetype) each(fn func(slot uint32) bool) {
	for i, ok := range a.alive {
		if ok && !fn(uint32(i)) {
			return
		}
	}
}

// Entities yields the id of every live entity in slot order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		a.each(func(slot uint32) bool {
			return yield(a.entityId(slot))
		})
	}
}

// HasComponent reports whether the archetype carries component type t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	_, ok := a.index[t]
	return ok
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// componentTypes returns the name-sorted types of components, panicking on
// duplicates and on types that cannot be components.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		if comp == nil {
			panic("nil component")
		}
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("duplicate component type " + types[i].String())
		}
	}
	return types
}

// archetypeId hashes sorted type names with FNV-1a.
func archetypeId(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)

	h := offset
	for _, t := range types {
		name := t.PkgPath() + "." + t.String()
		for i := 0; i < len(name); i++ {
			h ^= uint32(name[i])
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}
	return h
}
