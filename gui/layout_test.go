package gui_test

import (
	"testing"

	"github.com/plus3/tetris/game"
	"github.com/plus3/tetris/gui"
	"github.com/plus3/tetris/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayfieldPlacement(t *testing.T) {
	assert.Equal(t, 300, gui.PlayWidth)
	assert.Equal(t, 600, gui.PlayHeight)
	assert.Equal(t, 250, gui.PlayLeft)
	assert.Equal(t, 100, gui.PlayTop)
	assert.Equal(t, gui.Rect{X: 250, Y: 100, W: 300, H: 600}, gui.PlayfieldRect())
	assert.Equal(t, 400.0, gui.TitleCenter())
}

func TestCellRect(t *testing.T) {
	tests := []struct {
		cell tetromino.Cell
		want gui.Rect
	}{
		{tetromino.Cell{Col: 0, Row: 0}, gui.Rect{X: 250, Y: 100, W: 30, H: 30}},
		{tetromino.Cell{Col: 9, Row: 19}, gui.Rect{X: 520, Y: 670, W: 30, H: 30}},
		{tetromino.Cell{Col: 4, Row: 2}, gui.Rect{X: 370, Y: 160, W: 30, H: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, gui.CellRect(tt.cell))
		})
	}
}

func TestGridLines(t *testing.T) {
	lines := gui.GridLines()
	require.Len(t, lines, tetromino.Rows+tetromino.Columns)

	assert.Equal(t, gui.Line{X0: 250, Y0: 100, X1: 550, Y1: 100}, lines[0])
	assert.Equal(t, gui.Line{X0: 250, Y0: 670, X1: 550, Y1: 670}, lines[tetromino.Rows-1])
	assert.Equal(t, gui.Line{X0: 250, Y0: 100, X1: 250, Y1: 700}, lines[tetromino.Rows])
	assert.Equal(t, gui.Line{X0: 520, Y0: 100, X1: 520, Y1: 700}, lines[len(lines)-1])
}

func TestVisibleCellsHidesRowsAboveBoard(t *testing.T) {
	p := tetromino.NewPiece(tetromino.ShapeI)
	visible := gui.VisibleCells(p)
	require.Len(t, visible, 1, "only the bottom cell of a fresh vertical I is on the board")
	assert.Equal(t, tetromino.Cell{Col: 5, Row: 0}, visible[0])

	p.Y = -1
	assert.Empty(t, gui.VisibleCells(p))

	p.Y = 4
	assert.Len(t, gui.VisibleCells(p), 4)
}

func TestSessionLines(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	cfg.Name = "quiet-otter"
	w := game.NewWorld(cfg)

	lines := gui.SessionLines(w)
	assert.Contains(t, lines, "Name: quiet-otter")
	assert.Contains(t, lines, "Seed: 3")
	assert.Contains(t, lines, "Phase: falling")
	assert.Contains(t, lines, "Pieces: 0")
}
