package ecs

import (
	"fmt"
	"reflect"
)

// ComponentRegistry holds the column factories of every component type a
// Storage may hold. Spawning an unregistered type panics.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T as a component type.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions: " + t.String())
	}
	r.factories[t] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic(fmt.Sprintf("component type %s not registered", t))
	}
	return factory()
}

const blockSize = 64

// column stores one component type for every slot of an archetype.
type column interface {
	set(index int, value any)
	zero(index int)
	get(index int) any
}

// blockColumn keeps components in fixed-size heap blocks so pointers handed
// out by get stay valid as the column grows.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
}

func (c *blockColumn[T]) set(index int, value any) {
	b := index / blockSize
	for b >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}

	switch v := value.(type) {
	case T:
		c.blocks[b][index%blockSize] = v
	case *T:
		c.blocks[b][index%blockSize] = *v
	default:
		panic(fmt.Sprintf("component %T stored in column of %s", value, reflect.TypeFor[T]()))
	}
}

func (c *blockColumn[T]) zero(index int) {
	b := index / blockSize
	if b < len(c.blocks) {
		var zero T
		c.blocks[b][index%blockSize] = zero
	}
}

func (c *blockColumn[T]) get(index int) any {
	b := index / blockSize
	if b >= len(c.blocks) {
		return nil
	}
	return &c.blocks[b][index%blockSize]
}
