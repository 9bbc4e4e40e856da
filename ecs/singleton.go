package ecs

import "reflect"

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for global game state or
// configuration.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns an accessor for the T singleton, creating it from
// initializer (or the zero value) when the storage does not have one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.value = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.value, _ = s.storage.singleton(reflect.TypeFor[T]()).(*T)
}

// Get returns the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.value == nil {
		s.refresh()
	}
	return s.value
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
