package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists live entities and holds the selection shown by the
// component inspector.
type EntityBrowser struct {
	Title   string
	Storage *ecs.Storage
	PerPage int

	entities        []EntityInfo
	sortColumn      int
	sortAscending   bool
	filterText      string
	filterArchetype *uint32
	currentPage     int

	selected    ecs.EntityId
	hasSelected bool
}

func NewEntityBrowser(storage *ecs.Storage, perPage int) *EntityBrowser {
	return &EntityBrowser{
		Title:         "Entity Browser",
		Storage:       storage,
		PerPage:       max(perPage, 1),
		sortAscending: true,
	}
}

func (eb *EntityBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(560, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(230, 230), imgui.CondOnce)
	if !imgui.BeginV(eb.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetype = nil
	}

	filtered := eb.Filtered()
	eb.currentPage = min(eb.currentPage, max((len(filtered)-1)/eb.PerPage, 0))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.PerPage
		end := min(start+eb.PerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelected && eb.selected == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.PerPage {
		totalPages := (len(filtered) + eb.PerPage - 1) / eb.PerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Refresh rebuilds the entity list. Entities come and go every time a piece
// locks, so the list is rebuilt each frame.
func (eb *EntityBrowser) Refresh() {
	eb.entities = eb.entities[:0]

	for _, archetype := range eb.Storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for id := range archetype.Entities() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}

	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	less := func(a, b EntityInfo) bool {
		switch eb.sortColumn {
		case 1:
			return a.ArchetypeID < b.ArchetypeID
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(eb.entities, func(i, j int) bool {
		if !eb.sortAscending {
			return less(eb.entities[j], eb.entities[i])
		}
		return less(eb.entities[i], eb.entities[j])
	})
}

// Filtered returns the entities matching the search text and archetype
// filter.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterArchetype == nil {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		if eb.filterArchetype != nil && entity.ArchetypeID != *eb.filterArchetype {
			continue
		}

		if eb.filterText != "" {
			idStr := entity.ID.String()
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(archStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// SetFilter sets the search text matched against ids, archetype ids and
// component names.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// FilterArchetype restricts the list to one archetype. Nil clears it.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	eb.filterArchetype = id
	eb.currentPage = 0
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
	eb.hasSelected = true
}

// Selected returns the selected entity. The id may no longer be alive.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	return eb.selected, eb.hasSelected
}
