// Package gui is the windowed frontend. It polls ebiten input into the
// world's Input singleton, steps the world once per tick and draws the
// playfield through a render scheduler sharing the world's storage.
package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/ecs/debugui"
	debugui_ebiten "github.com/plus3/tetris/ecs/debugui/ebiten"
	"github.com/plus3/tetris/game"
)

// Options configures the window.
type Options struct {
	// TPS is the update rate. Zero uses ebiten's default.
	TPS int
	// Debug shows the Dear ImGui overlay.
	Debug bool
}

// Game implements ebiten.Game over a game.World.
type Game struct {
	World  *game.World
	Render *ecs.Scheduler

	screen  *ecs.Singleton[Screen]
	tps     int
	overlay *ecs.Scheduler
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	capture *ecs.Singleton[debugui.ImguiInputState]
}

// New builds the frontend for world. The debug overlay, when enabled,
// creates the window through the imgui backend.
func New(world *game.World, opts Options) (*Game, error) {
	face, err := LoadTitleFace()
	if err != nil {
		return nil, err
	}

	g := &Game{
		World:  world,
		Render: ecs.NewScheduler(world.Storage),
		screen: ecs.NewSingleton[Screen](world.Storage),
		tps:    opts.TPS,
	}
	if g.tps <= 0 {
		g.tps = ebiten.DefaultTPS
	}
	g.Render.Register(&RenderSystem{Face: face})

	if opts.Debug {
		debugui.Register(world.Registry)
		g.backend = debugui_ebiten.Install(world.Storage, "Tetris", ScreenWidth, ScreenHeight)
		g.capture = ecs.NewSingleton[debugui.ImguiInputState](world.Storage)
		g.overlay = ecs.NewScheduler(world.Storage)
		g.overlay.Register(&debugui.ImguiSystem{})
		tools := debugui.SpawnTools(world.Storage, world.Scheduler)
		SpawnSessionPanel(world, tools.Browser)
	}

	return g, nil
}

// Run opens the window and blocks until the world is done or the window
// is closed.
func Run(world *game.World, opts Options) error {
	g, err := New(world, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Tetris")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(g.tps)

	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.backend != nil {
		g.backend.Get().BeginFrame()
		defer g.backend.Get().EndFrame()
	}

	g.pollInput(g.World.Input())
	g.World.Step(1.0 / float64(g.tps))

	if g.overlay != nil {
		g.overlay.Once(0)
	}

	if g.World.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) pollInput(in *game.Input) {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.Quit = true
	}
	if !g.World.Config().Controls || g.keyboardCaptured() {
		return
	}

	in.Left = in.Left || inpututil.IsKeyJustPressed(ebiten.KeyLeft)
	in.Right = in.Right || inpututil.IsKeyJustPressed(ebiten.KeyRight)
	in.Down = in.Down || inpututil.IsKeyJustPressed(ebiten.KeyDown)
	in.Rotate = in.Rotate || inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyZ)
}

func (g *Game) keyboardCaptured() bool {
	if g.capture == nil {
		return false
	}
	state := g.capture.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.Render.Once(0)
	g.screen.Get().Image = nil

	if g.backend != nil {
		g.backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Get().Layout(ScreenWidth, ScreenHeight)
	}
	return ScreenWidth, ScreenHeight
}
