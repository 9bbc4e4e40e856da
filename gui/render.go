package gui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetris/ecs"
	"github.com/plus3/tetris/game"
	"github.com/plus3/tetris/tetromino"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Screen holds the image being drawn this frame.
type Screen struct {
	*ebiten.Image
}

// LoadTitleFace returns the face used for the title and banner.
func LoadTitleFace() (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: TitleSize}, nil
}

// RenderSystem draws the title, the locked grid, the falling piece and the
// playfield border to the Screen singleton.
type RenderSystem struct {
	Screen  ecs.Singleton[Screen]
	Board   ecs.Singleton[game.Board]
	Session ecs.Singleton[game.Session]
	Active  ecs.Query[struct{ *game.Falling }]

	Face *text.GoTextFace
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	dst := screen.Image
	dst.Fill(tetromino.Background)

	s.drawText(dst, "TETRIS", TitleTop)

	grid := &s.Board.Get().Grid
	for r := range grid {
		for c := range grid[r] {
			fillRect(dst, CellRect(tetromino.Cell{Col: c, Row: r}), grid[r][c])
		}
	}

	for row := range s.Active.Values() {
		piece := row.Falling.Piece
		for _, c := range VisibleCells(piece) {
			fillRect(dst, CellRect(c), piece.Color())
		}
	}

	for _, l := range GridLines() {
		vector.StrokeLine(dst, l.X0, l.Y0, l.X1, l.Y1, GridLineSize, Grey, false)
	}

	play := PlayfieldRect()
	vector.StrokeRect(dst, play.X, play.Y, play.W, play.H, BorderWidth, Red, false)

	if s.Session.Get().Phase == game.PhaseOver {
		s.drawText(dst, "GAME OVER", PlayTop+PlayHeight/2-TitleSize/2)
	}
}

func (s *RenderSystem) drawText(dst *ebiten.Image, str string, top float64) {
	if s.Face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(TitleCenter(), top)
	op.ColorScale.ScaleWithColor(White)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, str, s.Face, op)
}

func fillRect(dst *ebiten.Image, r Rect, clr color.Color) {
	vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, clr, false)
}
