package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/ecs/debugui"
	debugui_ebiten "github.com/plus3/tetris/ecs/debugui/ebiten"
)

type overlayGame struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *overlayGame) Update() error {
	g.backend.Get().BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.backend.Get().EndFrame()
	return nil
}

func (g *overlayGame) Draw(screen *ebiten.Image) {
	g.backend.Get().Draw(screen)
}

func (g *overlayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)

	backend := debugui_ebiten.Install(storage, "Overlay", 800, 600)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	debugui.SpawnTools(storage, scheduler)

	if err := ebiten.RunGame(&overlayGame{scheduler: scheduler, backend: backend}); err != nil {
		panic(err)
	}
}
