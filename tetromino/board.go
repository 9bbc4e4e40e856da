package tetromino

import (
	"image/color"

	"github.com/kamstrup/intmap"
)

// LockedCells maps board cells to the color of the piece that came to rest
// there. The zero value is not usable; call NewLockedCells.
type LockedCells struct {
	cells *intmap.Map[int64, color.RGBA]
}

// NewLockedCells returns an empty locked-cell map.
func NewLockedCells() *LockedCells {
	return &LockedCells{cells: intmap.New[int64, color.RGBA](Columns * Rows)}
}

func cellKey(c Cell) int64 {
	return int64(c.Row)<<32 | int64(uint32(c.Col))
}

func keyCell(k int64) Cell {
	return Cell{Col: int(int32(uint32(k))), Row: int(k >> 32)}
}

// Lock records c as occupied with color. Locking an occupied cell overwrites it.
func (l *LockedCells) Lock(c Cell, col color.RGBA) {
	l.cells.Put(cellKey(c), col)
}

// At returns the color locked at c.
func (l *LockedCells) At(c Cell) (color.RGBA, bool) {
	return l.cells.Get(cellKey(c))
}

func (l *LockedCells) Len() int {
	return l.cells.Len()
}

// Each calls fn for every locked cell until fn returns false. Order is undefined.
func (l *LockedCells) Each(fn func(Cell, color.RGBA) bool) {
	l.cells.ForEach(func(k int64, v color.RGBA) bool {
		return fn(keyCell(k), v)
	})
}

func (l *LockedCells) Clear() {
	l.cells.Clear()
}

// Grid is the color matrix of the playfield, indexed [row][col].
type Grid [Rows][Columns]color.RGBA

// CreateGrid builds the playfield colors from the locked cells. Locked cells
// outside the playfield are left out.
func CreateGrid(locked *LockedCells) Grid {
	var g Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = Background
		}
	}
	if locked == nil {
		return g
	}
	locked.Each(func(c Cell, col color.RGBA) bool {
		if c.InBounds() {
			g[c.Row][c.Col] = col
		}
		return true
	})
	return g
}

// At returns the color at c; ok is false outside the playfield.
func (g *Grid) At(c Cell) (color.RGBA, bool) {
	if !c.InBounds() {
		return color.RGBA{}, false
	}
	return g[c.Row][c.Col], true
}

// Free reports whether c is an empty cell on the playfield.
func (g *Grid) Free(c Cell) bool {
	col, ok := g.At(c)
	return ok && col == Background
}

// ValidSpace reports whether every cell of p is free or above the playfield.
func ValidSpace(p Piece, g *Grid) bool {
	for _, c := range p.Cells() {
		if c.Row < 0 {
			continue
		}
		if !g.Free(c) {
			return false
		}
	}
	return true
}

// CheckLost reports whether any locked cell sits on row 0 or above.
func CheckLost(locked *LockedCells) bool {
	lost := false
	locked.Each(func(c Cell, _ color.RGBA) bool {
		if c.Row < 1 {
			lost = true
			return false
		}
		return true
	})
	return lost
}
