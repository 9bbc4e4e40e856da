// Package game runs the falling-block rules as ECS systems. A World owns
// the storage, the session singletons and the update scheduler; frontends
// feed Input, call Step and draw from the board and pieces.
package game

import (
	"math/rand/v2"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/tetromino"
)

// World is one game session.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	config  *ecs.Singleton[Config]
	session *ecs.Singleton[Session]
	board   *ecs.Singleton[Board]
	gravity *ecs.Singleton[Gravity]
	input   *ecs.Singleton[Input]

	active *ecs.Query[struct{ *Falling }]
	next   *ecs.Query[struct{ *Queued }]
}

// RegisterComponents registers the game's entity components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Falling](registry)
	ecs.RegisterComponent[Queued](registry)
}

// NewWorld builds a session from cfg with an empty board, a falling piece
// and a queued piece. Extra component types needed by frontend systems must
// be registered on w.Registry before they are spawned.
func NewWorld(cfg Config) *World {
	cfg = cfg.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.Name == "" {
		cfg.Name = petname.Generate(2, "-")
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		Registry: registry,
		Storage:  storage,
		config:   ecs.NewSingleton(storage, cfg),
		session: ecs.NewSingleton(storage, Session{
			Name:  cfg.Name,
			Seed:  cfg.Seed,
			Phase: PhaseFalling,
		}),
		board: ecs.NewSingleton(storage, Board{
			Locked: tetromino.NewLockedCells(),
			Grid:   tetromino.CreateGrid(nil),
		}),
		gravity: ecs.NewSingleton(storage, Gravity{
			Step:       cfg.Step.Seconds(),
			MaxCatchUp: cfg.MaxCatchUp,
		}),
		input:  ecs.NewSingleton(storage, Input{}),
		active: ecs.NewQuery[struct{ *Falling }](storage),
		next:   ecs.NewQuery[struct{ *Queued }](storage),
	}

	dealer := ecs.NewSingleton(storage, newDealer(cfg.Seed)).Get()
	storage.Spawn(Falling{Piece: dealer.Deal()})
	storage.Spawn(Queued{Piece: dealer.Deal()})

	w.Scheduler = ecs.NewScheduler(storage)
	w.Scheduler.Register(&GridSystem{})
	w.Scheduler.Register(&ControlSystem{})
	w.Scheduler.Register(&SpawnSystem{})
	w.Scheduler.Register(&GravitySystem{})

	cfg.Logger.Printf("%s: session started, seed %d", cfg.Name, cfg.Seed)
	return w
}

// Register appends a system to the update scheduler after the game systems.
func (w *World) Register(system ecs.System) {
	w.Scheduler.Register(system)
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

func (w *World) Config() *Config {
	return w.config.Get()
}

func (w *World) Session() *Session {
	return w.session.Get()
}

func (w *World) Board() *Board {
	return w.board.Get()
}

func (w *World) Gravity() *Gravity {
	return w.gravity.Get()
}

// Input returns the pending input for the next frame.
func (w *World) Input() *Input {
	return w.input.Get()
}

// Active returns the falling piece.
func (w *World) Active() (tetromino.Piece, bool) {
	w.active.Execute()
	_, row, ok := w.active.First()
	if !ok {
		return tetromino.Piece{}, false
	}
	return row.Falling.Piece, true
}

// Next returns the queued piece.
func (w *World) Next() (tetromino.Piece, bool) {
	w.next.Execute()
	_, row, ok := w.next.First()
	if !ok {
		return tetromino.Piece{}, false
	}
	return row.Queued.Piece, true
}

// ActiveId returns the entity carrying the falling piece.
func (w *World) ActiveId() (ecs.EntityId, bool) {
	w.active.Execute()
	id, _, ok := w.active.First()
	return id, ok
}

// NextId returns the entity carrying the queued piece.
func (w *World) NextId() (ecs.EntityId, bool) {
	w.next.Execute()
	id, _, ok := w.next.First()
	return id, ok
}

// Over reports whether the loss condition has been reached.
func (w *World) Over() bool {
	return w.Session().Phase == PhaseOver
}

// Done reports whether the frontend should stop: quit was requested, or
// the game is lost and the config exits on loss.
func (w *World) Done() bool {
	s := w.Session()
	return s.Quit || (s.Phase == PhaseOver && w.Config().ExitOnLoss)
}
