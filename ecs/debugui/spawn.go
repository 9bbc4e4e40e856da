package debugui

import "github.com/plus3/tetris/ecs"

// Tools holds the generic debug windows spawned by SpawnTools.
type Tools struct {
	Browser     *EntityBrowser
	Inspector   *ComponentInspector
	Archetypes  *ArchetypeViewer
	Queries     *QueryDebugger
	Performance *PerformanceStats
	Scheduler   *SchedulerPanel
}

// SpawnTools spawns an ImguiItem for every debug window over storage and
// scheduler. Clicking an archetype filters the entity browser; the inspector
// follows the browser's selection.
func SpawnTools(storage *ecs.Storage, scheduler *ecs.Scheduler) *Tools {
	browser := NewEntityBrowser(storage, 100)
	tools := &Tools{
		Browser:     browser,
		Inspector:   NewComponentInspector(storage, browser),
		Archetypes:  NewArchetypeViewer(storage),
		Queries:     NewQueryDebugger(storage),
		Performance: NewPerformanceStats(storage, 120),
		Scheduler:   &SchedulerPanel{Title: "Scheduler", Scheduler: scheduler},
	}

	storage.Spawn(ImguiItem{Render: tools.Performance.Render})
	storage.Spawn(ImguiItem{Render: tools.Scheduler.Render})
	storage.Spawn(ImguiItem{Render: tools.Browser.Render})
	storage.Spawn(ImguiItem{Render: tools.Inspector.Render})
	storage.Spawn(ImguiItem{Render: func() {
		if id := tools.Archetypes.Render(); id != nil {
			tools.Browser.FilterArchetype(id)
		}
	}})
	storage.Spawn(ImguiItem{Render: tools.Queries.Render})
	return tools
}
