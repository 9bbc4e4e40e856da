package game

import (
	"math"

	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/tetromino"
)

// GridSystem rebuilds the board grid from the locked cells and counts
// frames.
type GridSystem struct {
	Board   ecs.Singleton[Board]
	Session ecs.Singleton[Session]
}

func (s *GridSystem) Execute(frame *ecs.UpdateFrame) {
	s.Session.Get().Frames = frame.Frame
	board := s.Board.Get()
	board.Grid = tetromino.CreateGrid(board.Locked)
}

// ControlSystem applies frontend input: quit always, movement only when
// controls are enabled.
type ControlSystem struct {
	Config  ecs.Singleton[Config]
	Input   ecs.Singleton[Input]
	Session ecs.Singleton[Session]
	Board   ecs.Singleton[Board]
	Active  ecs.Query[struct{ *Falling }]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	defer func() { *in = Input{} }()

	session := s.Session.Get()
	if in.Quit {
		session.Quit = true
	}
	if !s.Config.Get().Controls || session.Phase == PhaseOver {
		return
	}

	grid := &s.Board.Get().Grid
	for row := range s.Active.Values() {
		p := &row.Falling.Piece
		if in.Left {
			tetromino.Shift(p, grid, -1)
		}
		if in.Right {
			tetromino.Shift(p, grid, 1)
		}
		if in.Rotate {
			tetromino.Rotate(p, grid)
		}
		if in.Down {
			tetromino.SoftDrop(p, grid)
		}
	}
}

// SpawnSystem keeps one falling and one queued piece in the world and
// returns the cycle to falling once a promoted piece is live.
type SpawnSystem struct {
	Session ecs.Singleton[Session]
	Dealer  ecs.Singleton[Dealer]
	Active  ecs.Query[struct{ *Falling }]
	Next    ecs.Query[struct{ *Queued }]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Phase == PhaseOver {
		return
	}

	dealer := s.Dealer.Get()
	if s.Active.Len() == 0 {
		if _, next, ok := s.Next.First(); ok {
			frame.Commands.Spawn(Falling{Piece: next.Queued.Piece})
			for id := range s.Next.Iter() {
				frame.Commands.Delete(id)
			}
		} else {
			frame.Commands.Spawn(Falling{Piece: dealer.Deal()})
		}
		frame.Commands.Spawn(Queued{Piece: dealer.Deal()})
		return
	}

	if session.Phase == PhaseLocked {
		session.Phase = PhaseFalling
	}
}

// GravitySystem advances the falling piece one row per gravity step and
// locks it when it cannot descend.
type GravitySystem struct {
	Config  ecs.Singleton[Config]
	Gravity ecs.Singleton[Gravity]
	Board   ecs.Singleton[Board]
	Session ecs.Singleton[Session]
	Dealer  ecs.Singleton[Dealer]
	Active  ecs.Query[struct {
		ecs.EntityId
		*Falling
	}]
	Next ecs.Query[struct {
		ecs.EntityId
		*Queued
	}]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Phase != PhaseFalling || session.Quit {
		return
	}

	id, active, ok := s.Active.First()
	if !ok {
		return
	}

	g := s.Gravity.Get()
	board := s.Board.Get()
	g.Accumulator += frame.DeltaTime

	for steps := 0; g.Accumulator >= g.Step; steps++ {
		if steps == g.MaxCatchUp {
			g.Dropped += int(g.Accumulator / g.Step)
			g.Accumulator = math.Mod(g.Accumulator, g.Step)
			return
		}

		g.Accumulator -= g.Step
		g.Ticks++
		if tetromino.Fall(&active.Falling.Piece, board.Locked, &board.Grid) == tetromino.Landed {
			s.land(frame, id, active.Falling.Piece)
			return
		}
	}
}

// land promotes the queued piece, deals a new one and checks for loss. The
// piece cells are already stamped into the board.
func (s *GravitySystem) land(frame *ecs.UpdateFrame, id ecs.EntityId, piece tetromino.Piece) {
	session := s.Session.Get()
	board := s.Board.Get()
	dealer := s.Dealer.Get()
	logger := s.Config.Get().Logger

	session.Phase = PhaseLocked
	session.Pieces++
	logger.Printf("%s: locked %s, %d pieces, %d cells", session.Name, piece, session.Pieces, board.Locked.Len())

	frame.Commands.Delete(id)
	if nextId, next, ok := s.Next.First(); ok {
		frame.Commands.Delete(nextId)
		frame.Commands.Spawn(Falling{Piece: next.Queued.Piece})
	} else {
		frame.Commands.Spawn(Falling{Piece: dealer.Deal()})
	}
	frame.Commands.Spawn(Queued{Piece: dealer.Deal()})

	if tetromino.CheckLost(board.Locked) {
		session.Phase = PhaseOver
		logger.Printf("%s: lost after %d pieces", session.Name, session.Pieces)
	}
}
