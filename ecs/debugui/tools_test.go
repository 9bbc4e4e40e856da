package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/tetris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type anchor struct {
	X, Y int
}

type block struct {
	anchor
	Pos      anchor
	Shape    kind
	Scale    float64
	Hidden   bool
	Name     string
	Owner    *anchor
	Tags     []string
	rotation int
}

type kind uint8

func (k kind) String() string { return "kind" }

type tag struct {
	Label string
}

func newToolStorage(t *testing.T) *ecs.Storage {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[block](registry)
	ecs.RegisterComponent[tag](registry)
	Register(registry)
	return ecs.NewStorage(registry)
}

func TestReflectionCacheFields(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[block]())

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Pos", "Shape", "Scale", "Hidden", "Name", "Owner", "Tags"}, names)

	owner := fields[5]
	assert.True(t, owner.IsPointer)
	assert.True(t, owner.IsStruct)
	assert.Equal(t, reflect.TypeFor[anchor](), owner.Type)
	assert.Equal(t, 6, owner.Index)
	assert.True(t, fields[6].IsSlice)

	assert.Same(t, &fields[0], &rc.Fields(reflect.TypeFor[block]())[0])
	assert.Empty(t, rc.Fields(reflect.TypeFor[int]()))
}

func TestSetField(t *testing.T) {
	storage := newToolStorage(t)
	id := storage.Spawn(block{Owner: &anchor{}})
	blockType := reflect.TypeFor[block]()
	get := func() *block { return ecs.ReadComponent[block](storage, id) }

	tests := []struct {
		name  string
		path  []int
		value any
		ok    bool
		check func(*block) bool
	}{
		{"nested int", []int{1, 0}, int64(4), true, func(b *block) bool { return b.Pos.X == 4 }},
		{"float", []int{3}, 2.5, true, func(b *block) bool { return b.Scale == 2.5 }},
		{"bool", []int{4}, true, true, func(b *block) bool { return b.Hidden }},
		{"string", []int{5}, "s", true, func(b *block) bool { return b.Name == "s" }},
		{"through pointer", []int{6, 1}, int64(7), true, func(b *block) bool { return b.Owner.Y == 7 }},
		{"uint overflow", []int{2}, uint64(300), false, nil},
		{"wrong kind", []int{3}, int64(1), false, nil},
		{"unexported", []int{8}, int64(1), false, nil},
		{"out of range", []int{20}, int64(1), false, nil},
		{"into non-struct", []int{3, 0}, int64(1), false, nil},
		{"slice", []int{7}, "x", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, SetField(storage, id, blockType, tt.path, tt.value))
			if tt.check != nil {
				assert.True(t, tt.check(get()))
			}
		})
	}

	labelId := storage.Spawn(tag{Label: "a"})
	assert.True(t, SetField(storage, labelId, reflect.TypeFor[tag](), []int{0}, "b"))
	assert.Equal(t, "b", ecs.ReadComponent[tag](storage, labelId).Label)
	assert.False(t, SetField(storage, labelId, blockType, []int{0}, "b"), "entity lacks the component")

	storage.Delete(labelId)
	assert.False(t, SetField(storage, labelId, reflect.TypeFor[tag](), []int{0}, "c"))
}

func TestSetFieldNilPointer(t *testing.T) {
	storage := newToolStorage(t)
	id := storage.Spawn(block{})
	assert.False(t, SetField(storage, id, reflect.TypeFor[block](), []int{6, 0}, int64(1)))
}

func TestIsEnum(t *testing.T) {
	assert.True(t, isEnum(reflect.ValueOf(kind(1))))
	assert.False(t, isEnum(reflect.ValueOf(uint8(1))))
	assert.False(t, isEnum(reflect.ValueOf("x")))
}

func TestEntityBrowser(t *testing.T) {
	storage := newToolStorage(t)
	b1 := storage.Spawn(block{})
	b2 := storage.Spawn(block{})
	tg := storage.Spawn(tag{})

	eb := NewEntityBrowser(storage, 10)
	eb.Refresh()
	assert.Len(t, eb.Filtered(), 3)

	eb.SetFilter("tag")
	filtered := eb.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, tg, filtered[0].ID)
	assert.Equal(t, []string{"debugui.tag"}, filtered[0].ComponentTypes)

	eb.SetFilter("")
	arch := b1.ArchetypeId()
	eb.FilterArchetype(&arch)
	ids := []ecs.EntityId{}
	for _, e := range eb.Filtered() {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []ecs.EntityId{b1, b2}, ids)

	eb.FilterArchetype(nil)
	storage.Delete(b2)
	eb.Refresh()
	assert.Len(t, eb.Filtered(), 2)
}

func TestEntityBrowserSort(t *testing.T) {
	storage := newToolStorage(t)
	storage.Spawn(block{})
	storage.Spawn(block{})
	storage.Spawn(block{})

	eb := NewEntityBrowser(storage, 10)
	eb.Refresh()
	rows := eb.Filtered()
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].ID, rows[i].ID)
	}

	eb.sortAscending = false
	eb.sortEntities()
	rows = eb.Filtered()
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i-1].ID, rows[i].ID)
	}
}

func TestEntityBrowserSelectionOutlivesEntity(t *testing.T) {
	storage := newToolStorage(t)
	eb := NewEntityBrowser(storage, 10)
	_, ok := eb.Selected()
	assert.False(t, ok)

	id := storage.Spawn(block{})
	eb.Select(id)
	storage.Delete(id)
	reused := storage.Spawn(block{})

	selected, ok := eb.Selected()
	require.True(t, ok)
	assert.Equal(t, id, selected)
	assert.False(t, storage.Alive(selected))
	assert.True(t, storage.Alive(reused))
}

func TestArchetypeViewerRows(t *testing.T) {
	storage := newToolStorage(t)
	storage.Spawn(block{})
	storage.Spawn(block{})
	storage.Spawn(tag{})

	av := NewArchetypeViewer(storage)
	av.Refresh()
	rows := av.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].EntityCount)
	assert.Equal(t, []string{"debugui.block"}, rows[0].ComponentTypes)
	assert.Equal(t, 1, rows[1].EntityCount)

	av.sortColumn, av.sortAscending = 2, true
	av.sortArchetypes()
	assert.Equal(t, 1, av.Rows()[0].EntityCount)
}

func TestQueryDebugger(t *testing.T) {
	storage := newToolStorage(t)
	storage.Spawn(block{})
	storage.Spawn(block{}, tag{})
	storage.Spawn(tag{})

	types := ComponentTypes(storage)
	assert.Len(t, types, 2)
	assert.Equal(t, reflect.TypeFor[tag](), types["debugui.tag"])

	qd := NewQueryDebugger(storage)
	assert.Nil(t, qd.Matching())

	qd.Toggle("debugui.block", true)
	assert.Len(t, qd.Matching(), 2)

	qd.Toggle("debugui.tag", true)
	matching := qd.Matching()
	require.Len(t, matching, 1)
	assert.Equal(t, 1, matching[0].Len())

	qd.Toggle("debugui.block", false)
	qd.Toggle("debugui.tag", false)
	qd.Toggle("missing", true)
	assert.Nil(t, qd.Matching())
}

func TestFrameTimer(t *testing.T) {
	base := time.Unix(100, 0)
	calls := 0
	ft := NewFrameTimer()
	ft.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 16 * time.Millisecond)
	}

	_, ok := ft.Delta()
	assert.False(t, ok)
	d, ok := ft.Delta()
	assert.True(t, ok)
	assert.Equal(t, 16*time.Millisecond, d)
}

func TestSpawnToolsAddsImguiItems(t *testing.T) {
	storage := newToolStorage(t)
	scheduler := ecs.NewScheduler(storage)

	tools := SpawnTools(storage, scheduler)
	require.NotNil(t, tools.Browser)
	assert.Same(t, tools.Browser, tools.Inspector.Browser)

	items := ecs.NewQuery[struct{ *ImguiItem }](storage)
	items.Execute()
	assert.Equal(t, 6, items.Len())
}
