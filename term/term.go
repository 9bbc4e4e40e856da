// Package term is the terminal frontend. A goroutine forwards tcell events
// through a channel; InputSystem drains it on the scheduler goroutine.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/game"
)

// Options configures the terminal loop.
type Options struct {
	// Interval is the time between frames.
	Interval time.Duration
}

// Events carries terminal events to the scheduler goroutine.
type Events struct {
	C chan tcell.Event
}

// InputSystem translates pending terminal events into game input.
type InputSystem struct {
	Events  ecs.Singleton[Events]
	Input   ecs.Singleton[game.Input]
	Config  ecs.Singleton[game.Config]
	Screen  ecs.Singleton[Screen]
	pending []tcell.Event
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	events := s.Events.Get()
	if events == nil {
		return
	}

	s.pending = s.pending[:0]
	for drained := false; !drained; {
		select {
		case ev := <-events.C:
			s.pending = append(s.pending, ev)
		default:
			drained = true
		}
	}

	in := s.Input.Get()
	controls := s.Config.Get().Controls
	for _, ev := range s.pending {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			if screen := s.Screen.Get(); screen != nil && screen.Screen != nil {
				screen.Sync()
			}
		case *tcell.EventKey:
			applyKey(in, ev, controls)
		}
	}
}

func applyKey(in *game.Input, ev *tcell.EventKey, controls bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.Quit = true
		return
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			in.Quit = true
			return
		}
	}
	if !controls {
		return
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		in.Left = true
	case tcell.KeyRight:
		in.Right = true
	case tcell.KeyDown:
		in.Down = true
	case tcell.KeyUp:
		in.Rotate = true
	case tcell.KeyRune:
		if ev.Rune() == 'z' {
			in.Rotate = true
		}
	}
}

// doneSystem cancels the loop once the world is done.
type doneSystem struct {
	world  *game.World
	cancel context.CancelFunc
}

func (s *doneSystem) Execute(frame *ecs.UpdateFrame) {
	if s.world.Done() {
		s.cancel()
	}
}

// Attach registers the terminal input and render systems on world, bound
// to screen. Keys read in one frame reach the game systems on the next.
func Attach(world *game.World, screen tcell.Screen) *Events {
	ecs.NewSingleton(world.Storage, Screen{Screen: screen})
	events := ecs.NewSingleton(world.Storage, Events{C: make(chan tcell.Event, 64)}).Get()
	world.Register(&InputSystem{})
	world.Register(&RenderSystem{})
	return events
}

// Forward pumps screen events into events until the screen is finalized
// or ctx is done. PollEvent only returns on an event, so a caller that
// cancels ctx without finalizing the screen must post one to wake it.
func Forward(ctx context.Context, screen tcell.Screen, events *Events) {
	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		select {
		case events.C <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run takes over the terminal and plays world until it is done or ctx is
// cancelled.
func Run(ctx context.Context, world *game.World, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	return RunScreen(ctx, world, screen, opts)
}

// RunScreen plays world on an initialized screen. The caller owns screen
// and must call Fini on it; RunScreen stops its event goroutine before it
// returns, so the screen can be reused or finalized afterwards.
func RunScreen(ctx context.Context, world *game.World, screen tcell.Screen, opts Options) error {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := Attach(world, screen)
	world.Register(&doneSystem{world: world, cancel: cancel})

	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		Forward(ctx, screen, events)
	}()

	world.Scheduler.Run(ctx, opts.Interval)

	cancel()
	// A full queue already holds an event that wakes PollEvent.
	_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-forwarded
	return nil
}
