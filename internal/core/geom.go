// Package core provides fundamental types and utilities for the blockfall
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Pos is an integer 2D vector in cell coordinates.
// X grows rightward, Y grows downward.
type Pos struct {
	X, Y int
}

// Add returns the component-wise sum of two positions.
func (p Pos) Add(q Pos) Pos {
	return Pos{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Pos) Sub(q Pos) Pos {
	return Pos{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the position multiplied by a scalar.
func (p Pos) Scale(k int) Pos {
	return Pos{X: p.X * k, Y: p.Y * k}
}

// Cell is a single grid cell. A zero Cell is empty with no color.
type Cell struct {
	Filled bool
	Color  Color
}

// Grid is a rectangular matrix of cells. All rows have equal length;
// every constructor and transform below preserves that invariant.
type Grid [][]Cell

// NewGrid creates an empty width x height grid.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]Cell, width)
	}
	return g
}

// Width returns the number of columns, 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Clone returns a deep copy. Transitions that write cells must clone
// first; grids are otherwise shared freely between snapshots.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// RotateCW returns the grid rotated a quarter turn clockwise
// (transpose followed by row reversal).
func (g Grid) RotateCW() Grid {
	h, w := g.Height(), g.Width()
	out := NewGrid(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[x][h-1-y] = g[y][x]
		}
	}
	return out
}

// RotateCCW returns the grid rotated a quarter turn counter-clockwise.
func (g Grid) RotateCCW() Grid {
	h, w := g.Height(), g.Width()
	out := NewGrid(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[w-1-x][y] = g[y][x]
		}
	}
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
