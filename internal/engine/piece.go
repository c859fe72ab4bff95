package engine

import "github.com/velikanov/blockfall/internal/core"

// PieceType identifies one of the seven tetromino shapes.
type PieceType int

const (
	PieceI PieceType = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
	pieceTypeCount
)

// allPieceTypes lists the types in canonical order for the bag shuffle.
var allPieceTypes = [pieceTypeCount]PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// pieceColors assigns each type its display color.
var pieceColors = [pieceTypeCount]core.Color{
	PieceI: core.ColorCyan,
	PieceJ: core.ColorBlue,
	PieceL: core.ColorOrange,
	PieceO: core.ColorYellow,
	PieceS: core.ColorGreen,
	PieceT: core.ColorMagenta,
	PieceZ: core.ColorRed,
}

// pieceLayouts holds the spawn-orientation shape masks. '#' is a filled
// cell. The bounding boxes follow the standard rotation-system sizes
// (4x4 for I, 2x2 for O, 3x3 for the rest).
var pieceLayouts = [pieceTypeCount][]string{
	PieceI: {
		"....",
		"####",
		"....",
		"....",
	},
	PieceJ: {
		"#..",
		"###",
		"...",
	},
	PieceL: {
		"..#",
		"###",
		"...",
	},
	PieceO: {
		"##",
		"##",
	},
	PieceS: {
		".##",
		"##.",
		"...",
	},
	PieceT: {
		".#.",
		"###",
		"...",
	},
	PieceZ: {
		"##.",
		".##",
		"...",
	},
}

// shapeGrid builds a fresh colored grid for the given piece type.
func shapeGrid(t PieceType) core.Grid {
	layout := pieceLayouts[t]
	g := core.NewGrid(len(layout[0]), len(layout))
	for y, row := range layout {
		for x, ch := range row {
			if ch == '#' {
				g[y][x] = core.Cell{Filled: true, Color: pieceColors[t]}
			}
		}
	}
	return g
}

// Tetromino is a falling piece: its shape grid, the grid's top-left
// anchor in field coordinates, and its rotation state (a valid index
// into the kick tables at all times).
type Tetromino struct {
	Pos      core.Pos
	Grid     core.Grid
	Type     PieceType
	Rotation int
}

// NewTetromino creates a piece of the given type at its spawn position,
// horizontally centered at the top of the field.
func NewTetromino(t PieceType) Tetromino {
	g := shapeGrid(t)
	return Tetromino{
		Pos:  core.Pos{X: (FieldWidth - g.Width()) / 2, Y: 0},
		Grid: g,
		Type: t,
	}
}

// Translate returns the piece shifted by d. The shape grid is shared:
// it is never mutated in place.
func (p Tetromino) Translate(d core.Pos) Tetromino {
	p.Pos = p.Pos.Add(d)
	return p
}

// Rotated returns the piece rotated a quarter turn (dir = +1 clockwise,
// -1 counter-clockwise) with its rotation state advanced modulo the
// kick-table size, wrapping correctly for negative steps.
func (p Tetromino) Rotated(dir int) Tetromino {
	if dir > 0 {
		p.Grid = p.Grid.RotateCW()
	} else {
		p.Grid = p.Grid.RotateCCW()
	}
	p.Rotation = ((p.Rotation+dir)%rotationStates + rotationStates) % rotationStates
	return p
}

// WithoutColor returns a copy whose filled cells carry no color tag.
// Used for the ghost piece.
func (p Tetromino) WithoutColor() Tetromino {
	g := p.Grid.Clone()
	for y := range g {
		for x := range g[y] {
			g[y][x].Color = core.ColorDefault
		}
	}
	p.Grid = g
	return p
}
