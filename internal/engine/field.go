package engine

import "github.com/velikanov/blockfall/internal/core"

// PlayField is the well the pieces fall into. Width and height are
// fixed at construction; the grid is never resized afterwards.
type PlayField struct {
	Pos  core.Pos
	Grid core.Grid
}

// NewPlayField creates an empty field of the given dimensions.
func NewPlayField(width, height int) PlayField {
	return PlayField{Grid: core.NewGrid(width, height)}
}

// Width returns the field width in cells.
func (f PlayField) Width() int {
	return f.Grid.Width()
}

// Height returns the field height in cells.
func (f PlayField) Height() int {
	return f.Grid.Height()
}

// IsColliding reports whether any filled cell of the piece, mapped into
// field-local coordinates, lands on a filled field cell or outside the
// field horizontally or below it. Cells above the field top are
// permitted: pieces spawn partially off-grid.
//
// This predicate is the single source of truth for every movement,
// rotation, gravity and spawn check.
func IsColliding(f PlayField, p Tetromino) bool {
	for y, row := range p.Grid {
		for x, cell := range row {
			if !cell.Filled {
				continue
			}
			at := p.Pos.Add(core.Pos{X: x, Y: y}).Sub(f.Pos)
			if at.X < 0 || at.X >= f.Width() || at.Y >= f.Height() {
				return true
			}
			if at.Y >= 0 && f.Grid[at.Y][at.X].Filled {
				return true
			}
		}
	}
	return false
}

// merge returns a new field with the piece's filled cells OR-ed in.
// A field cell that already carries a color keeps it; otherwise it
// takes the piece's.
func merge(f PlayField, p Tetromino) PlayField {
	g := f.Grid.Clone()
	for y, row := range p.Grid {
		for x, cell := range row {
			if !cell.Filled {
				continue
			}
			at := p.Pos.Add(core.Pos{X: x, Y: y}).Sub(f.Pos)
			if at.X < 0 || at.X >= f.Width() || at.Y < 0 || at.Y >= f.Height() {
				continue
			}
			dst := g[at.Y][at.X]
			dst.Filled = true
			if dst.Color == core.ColorDefault {
				dst.Color = cell.Color
			}
			g[at.Y][at.X] = dst
		}
	}
	f.Grid = g
	return f
}

// clearFilledRows removes fully filled rows, compacts the remainder
// downward and inserts empty rows at the top to restore the height.
// Returns the new grid and the number of rows removed.
func clearFilledRows(g core.Grid) (core.Grid, int) {
	w, h := g.Width(), g.Height()

	kept := make(core.Grid, 0, h)
	for _, row := range g {
		full := true
		for _, cell := range row {
			if !cell.Filled {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, row)
		}
	}

	removed := h - len(kept)
	if removed == 0 {
		return g, 0
	}

	out := core.NewGrid(w, removed)
	out = append(out, kept...)
	return out, removed
}
