package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs"
)

// QueryDebugger shows which archetypes and how many entities a query over
// the checked component types would visit.
type QueryDebugger struct {
	Title   string
	Storage *ecs.Storage

	selected map[string]bool
}

func NewQueryDebugger(storage *ecs.Storage) *QueryDebugger {
	return &QueryDebugger{
		Title:    "Query Debugger",
		Storage:  storage,
		selected: make(map[string]bool),
	}
}

func (qd *QueryDebugger) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 520), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(210, 220), imgui.CondOnce)
	imgui.SetNextWindowCollapsedV(true, imgui.CondOnce)
	if !imgui.BeginV(qd.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	types := ComponentTypes(qd.Storage)
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		selected := qd.selected[name]
		if imgui.Checkbox(name, &selected) {
			qd.Toggle(name, selected)
		}
	}

	imgui.Separator()

	matching := qd.Matching()
	if matching == nil {
		imgui.Text("No component types selected")
		return
	}

	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.Len()
	}
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.ID()))

				imgui.TableSetColumnIndex(1)
				componentNames := make([]string, len(arch.Types()))
				for i, t := range arch.Types() {
					componentNames[i] = t.String()
				}
				imgui.Text(strings.Join(componentNames, ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}
}

// Toggle checks or unchecks a component type by name.
func (qd *QueryDebugger) Toggle(name string, on bool) {
	if on {
		qd.selected[name] = true
	} else {
		delete(qd.selected, name)
	}
}

// Matching returns the archetypes carrying every checked type, or nil when
// nothing is checked. Checked names no archetype uses are ignored.
func (qd *QueryDebugger) Matching() []*ecs.Archetype {
	types := ComponentTypes(qd.Storage)
	required := make([]reflect.Type, 0, len(qd.selected))
	for name := range qd.selected {
		if t, ok := types[name]; ok {
			required = append(required, t)
		}
	}
	if len(required) == 0 {
		return nil
	}
	return MatchingArchetypes(qd.Storage, required)
}

// ComponentTypes returns every component type used by an archetype of
// storage, keyed by name.
func ComponentTypes(storage *ecs.Storage) map[string]reflect.Type {
	types := make(map[string]reflect.Type)
	for _, archetype := range storage.Archetypes() {
		for _, t := range archetype.Types() {
			types[t.String()] = t
		}
	}
	return types
}

// MatchingArchetypes returns the archetypes of storage that carry all of
// required, in creation order.
func MatchingArchetypes(storage *ecs.Storage, required []reflect.Type) []*ecs.Archetype {
	matching := make([]*ecs.Archetype, 0)
	for _, archetype := range storage.Archetypes() {
		if hasAllTypes(archetype, required) {
			matching = append(matching, archetype)
		}
	}
	return matching
}

func hasAllTypes(archetype *ecs.Archetype, required []reflect.Type) bool {
	for _, t := range required {
		if !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}
