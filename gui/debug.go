package gui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs/debugui"
	"github.com/plus3/tetris/game"
)

// SpawnSessionPanel adds an ImGui window showing the session and gravity
// state of world, with buttons that select the falling or queued piece in
// browser so the component inspector can edit it.
func SpawnSessionPanel(world *game.World, browser *debugui.EntityBrowser) {
	world.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(10, 510), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(230, 230), imgui.CondOnce)
			if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			for _, line := range SessionLines(world) {
				imgui.Text(line)
			}

			imgui.Separator()
			if imgui.Button("Inspect Falling") {
				InspectFalling(world, browser)
			}
			imgui.SameLine()
			if imgui.Button("Inspect Queued") {
				InspectQueued(world, browser)
			}

			imgui.End()
		},
	})
}

// InspectFalling selects the falling piece's entity in browser. It reports
// false when there is none.
func InspectFalling(world *game.World, browser *debugui.EntityBrowser) bool {
	id, ok := world.ActiveId()
	if ok {
		browser.Select(id)
	}
	return ok
}

// InspectQueued selects the queued piece's entity in browser.
func InspectQueued(world *game.World, browser *debugui.EntityBrowser) bool {
	id, ok := world.NextId()
	if ok {
		browser.Select(id)
	}
	return ok
}

// SessionLines formats the inspector contents.
func SessionLines(world *game.World) []string {
	s := world.Session()
	g := world.Gravity()
	lines := []string{
		fmt.Sprintf("Name: %s", s.Name),
		fmt.Sprintf("Seed: %d", s.Seed),
		fmt.Sprintf("Phase: %s", s.Phase),
		fmt.Sprintf("Pieces: %d", s.Pieces),
		fmt.Sprintf("Frames: %d", s.Frames),
		fmt.Sprintf("Gravity: %d ticks, %d dropped", g.Ticks, g.Dropped),
		fmt.Sprintf("Locked cells: %d", world.Board().Locked.Len()),
	}
	if p, ok := world.Active(); ok {
		lines = append(lines, fmt.Sprintf("Active: %s", p))
	}
	return lines
}
