package tetromino

// Outcome is the result of one gravity tick.
type Outcome uint8

const (
	// Moved means the piece descended one row.
	Moved Outcome = iota
	// Landed means the piece could not descend and was stamped into the
	// locked cells.
	Landed
	// Blocked means the move was invalid while the piece was still at or
	// above row 0; the piece keeps the new position and nothing is locked.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Landed:
		return "landed"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Fall advances p by one row. When the new position is invalid below the
// spawn row, p is moved back and every cell is locked with the piece color.
// g is consulted for validity only; it is not updated by a landing.
func Fall(p *Piece, locked *LockedCells, g *Grid) Outcome {
	p.Y++
	if ValidSpace(*p, g) {
		return Moved
	}
	if p.Y <= 0 {
		return Blocked
	}
	p.Y--
	Stamp(*p, locked)
	return Landed
}

// Stamp locks every cell of p with the piece color.
func Stamp(p Piece, locked *LockedCells) {
	col := p.Color()
	for _, c := range p.Cells() {
		locked.Lock(c, col)
	}
}

// validMove is ValidSpace plus the side walls: a moved piece may have cells
// above the playfield but never left or right of it.
func validMove(p Piece, g *Grid) bool {
	for _, c := range p.Cells() {
		if c.Col < 0 || c.Col >= Columns {
			return false
		}
	}
	return ValidSpace(p, g)
}

// Shift moves p dx columns, reverting if the result is invalid.
func Shift(p *Piece, g *Grid, dx int) bool {
	p.X += dx
	if validMove(*p, g) {
		return true
	}
	p.X -= dx
	return false
}

// Rotate advances p to its next rotation frame, reverting if the result is
// invalid.
func Rotate(p *Piece, g *Grid) bool {
	p.Rotation++
	if validMove(*p, g) {
		return true
	}
	p.Rotation--
	return false
}

// SoftDrop moves p down one row if the space is valid. Unlike Fall it
// never locks.
func SoftDrop(p *Piece, g *Grid) bool {
	p.Y++
	if validMove(*p, g) {
		return true
	}
	p.Y--
	return false
}
