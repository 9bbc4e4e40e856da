package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs"
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// ArchetypeViewer lists archetypes with their entity counts. Clicking a row
// selects it.
type ArchetypeViewer struct {
	Title   string
	Storage *ecs.Storage

	archetypes    []ArchetypeInfo
	selected      *uint32
	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewer(storage *ecs.Storage) *ArchetypeViewer {
	return &ArchetypeViewer{
		Title:      "Archetype Viewer",
		Storage:    storage,
		sortColumn: 2,
	}
}

// Render draws the window and returns the archetype id clicked this frame,
// or nil.
func (av *ArchetypeViewer) Render() *uint32 {
	imgui.SetNextWindowPosV(imgui.NewVec2(560, 520), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(230, 200), imgui.CondOnce)
	imgui.SetNextWindowCollapsedV(true, imgui.CondOnce)
	if !imgui.BeginV(av.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.Refresh()

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	var clicked *uint32

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.sortArchetypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				clicked = &id
				av.selected = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 60.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// Refresh rebuilds the rows from the storage.
func (av *ArchetypeViewer) Refresh() {
	av.archetypes = av.archetypes[:0]
	for _, archetype := range av.Storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}
		av.archetypes = append(av.archetypes, ArchetypeInfo{
			ID:             archetype.ID(),
			ComponentTypes: componentTypes,
			EntityCount:    archetype.Len(),
		})
	}
	av.sortArchetypes()
}

// Rows returns the rows from the last Refresh.
func (av *ArchetypeViewer) Rows() []ArchetypeInfo {
	return av.archetypes
}

func (av *ArchetypeViewer) sortArchetypes() {
	less := func(a, b ArchetypeInfo) bool {
		switch av.sortColumn {
		case 0:
			return a.ID < b.ID
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.EntityCount < b.EntityCount
		}
	}
	sort.SliceStable(av.archetypes, func(i, j int) bool {
		if !av.sortAscending {
			return less(av.archetypes[j], av.archetypes[i])
		}
		return less(av.archetypes[i], av.archetypes[j])
	})
}
