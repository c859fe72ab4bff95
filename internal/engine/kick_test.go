package engine

import (
	"testing"

	"github.com/velikanov/blockfall/internal/core"
)

func TestKickCandidatesStandardPieces(t *testing.T) {
	// Spawn -> clockwise for J/L/S/T/Z, in field coordinates (y down).
	expected := []core.Pos{
		{X: 0, Y: 0},
		{X: -1, Y: 0},
		{X: -1, Y: -1},
		{X: 0, Y: 2},
		{X: -1, Y: 2},
	}

	got := kickCandidates(PieceT, 0, 1)
	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("candidate %d = %+v, expected %+v", i, got[i], expected[i])
		}
	}
}

func TestKickCandidatesO(t *testing.T) {
	for from := 0; from < rotationStates; from++ {
		to := (from + 1) % rotationStates
		got := kickCandidates(PieceO, from, to)
		if len(got) != 1 {
			t.Fatalf("O piece should have a single trivial offset, got %d", len(got))
		}
		if got[0] != (core.Pos{}) {
			t.Errorf("O kick %d->%d = %+v, expected zero", from, to, got[0])
		}
	}
}

func TestKickCandidatesAntisymmetric(t *testing.T) {
	// Rotating back must offer the exact opposite offsets, for every
	// piece type and adjacent state pair.
	for _, typ := range allPieceTypes {
		for from := 0; from < rotationStates; from++ {
			to := (from + 1) % rotationStates
			fwd := kickCandidates(typ, from, to)
			back := kickCandidates(typ, to, from)
			if len(fwd) != len(back) {
				t.Fatalf("%s %d<->%d: candidate count mismatch", typ, from, to)
			}
			for i := range fwd {
				if fwd[i] != back[i].Scale(-1) {
					t.Errorf("%s %d->%d candidate %d: %+v is not the negation of %+v",
						typ, from, to, i, fwd[i], back[i])
				}
			}
		}
	}
}

func TestRotatedAdvancesRotationState(t *testing.T) {
	p := NewTetromino(PieceT)

	cw := p.Rotated(1)
	if cw.Rotation != 1 {
		t.Errorf("Rotation after +1 = %d, expected 1", cw.Rotation)
	}

	// Negative steps wrap correctly.
	ccw := p.Rotated(-1)
	if ccw.Rotation != 3 {
		t.Errorf("Rotation after -1 = %d, expected 3", ccw.Rotation)
	}

	full := p
	for i := 0; i < 4; i++ {
		full = full.Rotated(1)
	}
	if full.Rotation != 0 {
		t.Errorf("Rotation after four quarter turns = %d, expected 0", full.Rotation)
	}
	for y := range p.Grid {
		for x := range p.Grid[y] {
			if full.Grid[y][x] != p.Grid[y][x] {
				t.Fatal("four clockwise quarter turns should restore the shape")
			}
		}
	}
}
