package tetromino

import (
	"fmt"
	"image/color"
)

const (
	// SpawnX and SpawnY are the anchor of a freshly dealt piece.
	SpawnX = 5
	SpawnY = 0

	// The anchor sits at frame column 2, row 4.
	anchorCol = 2
	anchorRow = 4
)

// Cell is a board coordinate. Rows above the playfield are negative.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// InBounds reports whether the cell lies on the visible playfield.
func (c Cell) InBounds() bool {
	return c.Col >= 0 && c.Col < Columns && c.Row >= 0 && c.Row < Rows
}

// Piece is a tetromino positioned on the board by its anchor.
type Piece struct {
	X, Y     int
	Shape    Shape
	Rotation int
}

// NewPiece returns a piece of the given shape at the spawn anchor.
func NewPiece(shape Shape) Piece {
	return Piece{X: SpawnX, Y: SpawnY, Shape: shape}
}

// Color returns the piece's block color.
func (p Piece) Color() color.RGBA {
	return p.Shape.Color()
}

// Frame returns the rotation frame the piece currently shows.
func (p Piece) Frame() Frame {
	fs := p.Shape.Frames()
	i := p.Rotation % len(fs)
	if i < 0 {
		i += len(fs)
	}
	return fs[i]
}

// Cells converts the current frame to absolute board cells. The result is
// not bounds checked.
func (p Piece) Cells() []Cell {
	cells := make([]Cell, 0, 4)
	for i, line := range p.Frame() {
		for j, mark := range line {
			if mark == '0' {
				cells = append(cells, Cell{Col: p.X + j - anchorCol, Row: p.Y + i - anchorRow})
			}
		}
	}
	return cells
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@(%d,%d)r%d", p.Shape, p.X, p.Y, p.Rotation)
}
