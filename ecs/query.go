package ecs

import (
	"iter"
	"reflect"
)

var entityIdType = reflect.TypeFor[EntityId]()

type queryField struct {
	index    int
	compType reflect.Type // nil for the EntityId field
}

// Query iterates entities holding a set of components. T is a struct whose
// exported fields are pointers to component types, embedded or named; an
// EntityId field receives the entity's id.
//
// Matching archetypes are cached and refreshed when new archetypes appear.
// Rows are rebuilt by Execute, which the Scheduler calls before each
// system runs.
type Query[T any] struct {
	storage *Storage
	fields  []queryField

	archetypes []*Archetype
	seen       int

	ids   []EntityId
	rows  []T
	ready bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and parses the layout of T.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.fields = parseQueryFields(reflect.TypeFor[T]())
	q.archetypes = nil
	q.seen = -1
	q.ready = false
}

func parseQueryFields(structType reflect.Type) []queryField {
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct, got " + structType.String())
	}

	fields := make([]queryField, 0, structType.NumField())
	hasComponent := false
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			panic("Query struct field " + field.Name + " must be exported")
		}

		switch {
		case field.Type == entityIdType:
			fields = append(fields, queryField{index: i})
		case field.Type.Kind() == reflect.Pointer:
			fields = append(fields, queryField{index: i, compType: field.Type.Elem()})
			hasComponent = true
		default:
			panic("Query struct fields must be component pointers or EntityId: " + field.Name)
		}
	}

	if !hasComponent {
		panic("Query struct " + structType.String() + " names no components")
	}
	return fields
}

func (q *Query[T]) matches(archetype *Archetype) bool {
	for _, f := range q.fields {
		if f.compType != nil && !archetype.HasComponent(f.compType) {
			return false
		}
	}
	return true
}

func (q *Query[T]) refreshArchetypes() {
	all := q.storage.order
	if len(all) == q.seen {
		return
	}
	for _, archetype := range all[max(q.seen, 0):] {
		if q.matches(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
	q.seen = len(all)
}

func (q *Query[T]) row(archetype *Archetype, slot uint32) T {
	var result T
	v := reflect.ValueOf(&result).Elem()
	for _, f := range q.fields {
		if f.compType == nil {
			v.Field(f.index).SetUint(uint64(archetype.entityId(slot)))
			continue
		}
		v.Field(f.index).Set(reflect.ValueOf(archetype.component(slot, f.compType)))
	}
	return result
}

// Execute snapshots the matching entities for this frame.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.ids = q.ids[:0]
	q.rows = q.rows[:0]
	for _, archetype := range q.archetypes {
		archetype.each(func(slot uint32) bool {
			q.ids = append(q.ids, archetype.entityId(slot))
			q.rows = append(q.rows, q.row(archetype, slot))
			return true
		})
	}
	q.ready = true
}

// Iter returns an iterator over entity IDs and rows.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.rows[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over rows only.
// Panics if Execute has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.ready {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row) {
				return
			}
		}
	}
}

// Len returns the number of rows captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.rows)
}

// First returns the first row captured by the last Execute.
func (q *Query[T]) First() (EntityId, T, bool) {
	if !q.ready {
		panic("Query.First() called before Query.Execute()")
	}
	if len(q.rows) == 0 {
		var zero T
		return 0, zero, false
	}
	return q.ids[0], q.rows[0], true
}
