package game

import (
	"math/rand/v2"

	"github.com/plus3/tetris/tetromino"
)

// Falling marks the active piece.
type Falling struct {
	tetromino.Piece
}

// Queued marks the next piece. It is never rendered.
type Queued struct {
	tetromino.Piece
}

// Board owns the locked cells for the session and the grid derived from
// them each frame.
type Board struct {
	Locked *tetromino.LockedCells
	Grid   tetromino.Grid
}

// Gravity is a fixed-timestep accumulator in seconds.
type Gravity struct {
	Step        float64
	MaxCatchUp  int
	Accumulator float64
	Ticks       int
	Dropped     int
}

// Phase is the state of the piece cycle.
type Phase uint8

const (
	PhaseFalling Phase = iota
	PhaseLocked
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocked:
		return "locked"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Session is the progress of one game.
type Session struct {
	Name   string
	Seed   uint64
	Phase  Phase
	Pieces int
	Frames uint64
	Quit   bool
}

// Input holds the requests a frontend collected since the last frame. It is
// cleared once consumed.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Down   bool
	Rotate bool
}

// Dealer draws new pieces.
type Dealer struct {
	rng *rand.Rand
}

func newDealer(seed uint64) Dealer {
	return Dealer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Deal returns a fresh piece of a uniformly chosen shape at the spawn anchor.
func (d *Dealer) Deal() tetromino.Piece {
	return tetromino.NewPiece(tetromino.RandomShape(d.rng))
}
