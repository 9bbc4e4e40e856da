// Package ebiten hosts the Dear ImGui ebiten backend as an ECS singleton so
// a game loop can frame it around its scheduler.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Install creates the backend window, disables imgui.ini and stores the
// backend as a singleton in storage.
func Install(storage *ecs.Storage, title string, width, height int) *ecs.Singleton[ImguiBackend] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return ecs.NewSingleton[ImguiBackend](storage, ImguiBackend{EbitenBackend: backend})
}
