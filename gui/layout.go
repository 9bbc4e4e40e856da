package gui

import (
	"image/color"

	"github.com/plus3/tetris/tetromino"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 750
	BlockSize    = 30
	PlayWidth    = tetromino.Columns * BlockSize
	PlayHeight   = tetromino.Rows * BlockSize

	// PlayLeft and PlayTop place the playfield centered horizontally with a
	// 50px bottom margin.
	PlayLeft = (ScreenWidth - PlayWidth) / 2
	PlayTop  = ScreenHeight - PlayHeight - 50

	TitleTop     = 30
	TitleSize    = 60
	BorderWidth  = 5
	GridLineSize = 1
)

var (
	White = color.RGBA{255, 255, 255, 255}
	Grey  = color.RGBA{128, 128, 128, 255}
	Red   = color.RGBA{255, 0, 0, 255}
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H float32
}

// CellRect returns the screen rectangle of a playfield cell.
func CellRect(c tetromino.Cell) Rect {
	return Rect{
		X: float32(PlayLeft + c.Col*BlockSize),
		Y: float32(PlayTop + c.Row*BlockSize),
		W: BlockSize,
		H: BlockSize,
	}
}

// PlayfieldRect returns the screen rectangle of the whole playfield.
func PlayfieldRect() Rect {
	return Rect{X: PlayLeft, Y: PlayTop, W: PlayWidth, H: PlayHeight}
}

// Line is a screen-space segment.
type Line struct {
	X0, Y0, X1, Y1 float32
}

// GridLines returns one horizontal line per row and one vertical line per
// column, each starting at the row or column's top-left edge.
func GridLines() []Line {
	lines := make([]Line, 0, tetromino.Rows+tetromino.Columns)
	for i := range tetromino.Rows {
		y := float32(PlayTop + i*BlockSize)
		lines = append(lines, Line{X0: PlayLeft, Y0: y, X1: PlayLeft + PlayWidth, Y1: y})
	}
	for j := range tetromino.Columns {
		x := float32(PlayLeft + j*BlockSize)
		lines = append(lines, Line{X0: x, Y0: PlayTop, X1: x, Y1: PlayTop + PlayHeight})
	}
	return lines
}

// VisibleCells returns the cells of p that fall inside the playfield. Cells
// above the top row are not drawn.
func VisibleCells(p tetromino.Piece) []tetromino.Cell {
	cells := p.Cells()
	visible := cells[:0]
	for _, c := range cells {
		if c.InBounds() {
			visible = append(visible, c)
		}
	}
	return visible
}

// TitleCenter returns the x coordinate the title is centered on.
func TitleCenter() float64 {
	return PlayLeft + PlayWidth/2
}
