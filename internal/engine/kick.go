package engine

import "github.com/velikanov/blockfall/internal/core"

// rotationStates is the number of rotation states per piece (the kick
// tables are indexed by rotation state).
const rotationStates = 4

// Offset tables in the rotation-system convention: one entry list per
// rotation state, y axis pointing UP. The kick candidates for a
// rotation from state a to state b are table[a][i] - table[b][i],
// tried in order, with y inverted to match the field's
// downward-increasing axis.

// offsetsJLSTZ covers J, L, S, T and Z.
var offsetsJLSTZ = [rotationStates][5]core.Pos{
	{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}},
}

// offsetsI is the I piece's own table, adjusted for bounding-box matrix
// rotation so the derived kicks equal the standard wall-kick lists.
var offsetsI = [rotationStates][5]core.Pos{
	{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}},
	{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: -1}, {X: -2, Y: -1}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -2}, {X: -1, Y: 1}},
}

// offsetsO is the O piece's single trivial offset per state: a 2x2
// square is rotation-invariant under matrix rotation, so no kick is
// ever needed.
var offsetsO = [rotationStates][1]core.Pos{
	{{X: 0, Y: 0}},
	{{X: 0, Y: 0}},
	{{X: 0, Y: 0}},
	{{X: 0, Y: 0}},
}

// kickCandidates returns the ordered kick offsets, in field coordinates,
// for rotating a piece of type t from rotation state `from` to `to`.
func kickCandidates(t PieceType, from, to int) []core.Pos {
	switch t {
	case PieceO:
		return deriveKicks(offsetsO[from][:], offsetsO[to][:])
	case PieceI:
		return deriveKicks(offsetsI[from][:], offsetsI[to][:])
	default:
		return deriveKicks(offsetsJLSTZ[from][:], offsetsJLSTZ[to][:])
	}
}

// deriveKicks subtracts the target entries from the source entries and
// inverts the vertical axis.
func deriveKicks(src, dst []core.Pos) []core.Pos {
	kicks := make([]core.Pos, len(src))
	for i := range src {
		d := src[i].Sub(dst[i])
		kicks[i] = core.Pos{X: d.X, Y: -d.Y}
	}
	return kicks
}
