package term_test

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetris/game"
	"github.com/plus3/tetris/term"
	"github.com/plus3/tetris/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(term.Width, term.Height)
	t.Cleanup(s.Fini)
	return s
}

func cellAt(t *testing.T, s tcell.SimulationScreen, x, y int) tcell.SimCell {
	t.Helper()
	cells, width, _ := s.GetContents()
	return cells[y*width+x]
}

func background(cell tcell.SimCell) tcell.Color {
	_, bg, _ := cell.Style.Decompose()
	return bg
}

func TestDrawBorderAndTitle(t *testing.T) {
	s := newScreen(t)
	grid := tetromino.CreateGrid(nil)

	term.Draw(s, &grid, nil, false)
	s.Show()

	right := term.OriginX + tetromino.Columns*term.CellWidth
	bottom := term.OriginY + tetromino.Rows
	assert.Equal(t, []rune{tcell.RuneULCorner}, cellAt(t, s, 0, term.OriginY-1).Runes)
	assert.Equal(t, []rune{tcell.RuneLRCorner}, cellAt(t, s, right, bottom).Runes)
	assert.Equal(t, []rune{tcell.RuneVLine}, cellAt(t, s, 0, term.OriginY+5).Runes)

	var title []rune
	for x := range term.Width {
		title = append(title, cellAt(t, s, x, 0).Runes...)
	}
	assert.Contains(t, string(title), "TETRIS")
}

func TestDrawLockedAndActiveCells(t *testing.T) {
	s := newScreen(t)

	locked := tetromino.NewLockedCells()
	locked.Lock(tetromino.Cell{Col: 0, Row: 19}, tetromino.ShapeS.Color())
	grid := tetromino.CreateGrid(locked)

	active := tetromino.NewPiece(tetromino.ShapeO)
	active.Y = 10

	term.Draw(s, &grid, &active, false)
	s.Show()

	x, y := term.CellOrigin(tetromino.Cell{Col: 0, Row: 19})
	green := tcell.NewRGBColor(0, 255, 0)
	assert.Equal(t, green, background(cellAt(t, s, x, y)))
	assert.Equal(t, green, background(cellAt(t, s, x+1, y)))

	yellow := tcell.NewRGBColor(255, 255, 0)
	for _, c := range active.Cells() {
		x, y := term.CellOrigin(c)
		assert.Equal(t, yellow, background(cellAt(t, s, x, y)), "cell %s", c)
	}

	x, y = term.CellOrigin(tetromino.Cell{Col: 9, Row: 0})
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), background(cellAt(t, s, x, y)))
}

func TestDrawGameOver(t *testing.T) {
	s := newScreen(t)
	grid := tetromino.CreateGrid(nil)

	term.Draw(s, &grid, nil, true)
	s.Show()

	var row []rune
	for x := range term.Width {
		row = append(row, cellAt(t, s, x, term.OriginY+tetromino.Rows/2).Runes...)
	}
	assert.Contains(t, string(row), "GAME OVER")
}

func runWorld(t *testing.T, w *game.World, s tcell.Screen) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, term.RunScreen(ctx, w, s, term.Options{Interval: time.Millisecond}))
	require.NoError(t, ctx.Err(), "run ended by timeout")
}

func TestRunQuitsOnEscape(t *testing.T) {
	s := newScreen(t)
	w := game.NewWorld(game.Config{Seed: 1, Name: "term-test"})

	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	runWorld(t, w, s)

	assert.True(t, w.Session().Quit)
	assert.True(t, w.Done())
}

func TestRunQuitsOnQ(t *testing.T) {
	s := newScreen(t)
	w := game.NewWorld(game.Config{Seed: 1, Name: "term-test"})

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	runWorld(t, w, s)

	assert.True(t, w.Session().Quit)
}

func TestRunEndsOnLoss(t *testing.T) {
	s := newScreen(t)
	cfg := game.DefaultConfig()
	cfg.Seed = 9
	cfg.Step = time.Microsecond
	w := game.NewWorld(cfg)

	runWorld(t, w, s)

	assert.Equal(t, game.PhaseOver, w.Session().Phase)
	assert.False(t, w.Session().Quit)
}

func TestRunScreenReleasesEventsBeforeFini(t *testing.T) {
	s := newScreen(t)
	w := game.NewWorld(game.Config{Seed: 1, Name: "term-test"})

	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	runWorld(t, w, s)

	// The screen is still open; a key injected now must reach this reader
	// and not a leftover event goroutine.
	got := make(chan *tcell.EventKey, 1)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				got <- key
				return
			}
		}
	}()
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case key := <-got:
		assert.Equal(t, 'x', key.Rune())
	case <-time.After(time.Second):
		t.Fatal("key was swallowed after RunScreen returned")
	}
}
