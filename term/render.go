package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/game"
	"github.com/plus3/tetris/tetromino"
)

const (
	// CellWidth is the number of terminal columns per board cell.
	CellWidth = 2

	OriginX = 1
	OriginY = 2

	Width  = OriginX*2 + tetromino.Columns*CellWidth
	Height = OriginY + tetromino.Rows + 1
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// CellOrigin returns the terminal position of the left half of a board cell.
func CellOrigin(c tetromino.Cell) (x, y int) {
	return OriginX + c.Col*CellWidth, OriginY + c.Row
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw paints the title, border, grid and the visible part of active onto
// s. It does not call Show.
func Draw(s tcell.Screen, grid *tetromino.Grid, active *tetromino.Piece, over bool) {
	s.Clear()

	drawText(s, Width/2-3, 0, "TETRIS", titleStyle)
	drawBorder(s)

	for r := range grid {
		for c := range grid[r] {
			fillCell(s, tetromino.Cell{Col: c, Row: r}, grid[r][c])
		}
	}

	if active != nil {
		col := active.Color()
		for _, c := range active.Cells() {
			if c.InBounds() {
				fillCell(s, c, col)
			}
		}
	}

	if over {
		drawText(s, Width/2-4, OriginY+tetromino.Rows/2, "GAME OVER", titleStyle.Background(tcell.ColorBlack))
	}
}

func fillCell(s tcell.Screen, c tetromino.Cell, col color.RGBA) {
	x, y := CellOrigin(c)
	style := tcell.StyleDefault.Background(toColor(col))
	for dx := range CellWidth {
		s.SetContent(x+dx, y, ' ', nil, style)
	}
}

func drawBorder(s tcell.Screen) {
	left, right := OriginX-1, OriginX+tetromino.Columns*CellWidth
	top, bottom := OriginY-1, OriginY+tetromino.Rows

	for x := left + 1; x < right; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, borderStyle)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, tcell.RuneVLine, nil, borderStyle)
		s.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	s.SetContent(left, top, tcell.RuneULCorner, nil, borderStyle)
	s.SetContent(right, top, tcell.RuneURCorner, nil, borderStyle)
	s.SetContent(left, bottom, tcell.RuneLLCorner, nil, borderStyle)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

func drawText(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Screen holds the terminal the RenderSystem draws to.
type Screen struct {
	tcell.Screen
}

// RenderSystem draws the world to the Screen singleton and shows it.
type RenderSystem struct {
	Screen  ecs.Singleton[Screen]
	Board   ecs.Singleton[game.Board]
	Session ecs.Singleton[game.Session]
	Active  ecs.Query[struct{ *game.Falling }]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Screen == nil {
		return
	}

	var active *tetromino.Piece
	if _, row, ok := s.Active.First(); ok {
		active = &row.Falling.Piece
	}
	Draw(screen.Screen, &s.Board.Get().Grid, active, s.Session.Get().Phase == game.PhaseOver)
	screen.Show()
}
