package engine

import "github.com/velikanov/blockfall/internal/core"

// LockTimer is the lock-delay sub-state of the active piece.
// Ready is false while the piece is airborne; once the piece rests on
// something, Ready flips true and StartMs records when the delay began.
type LockTimer struct {
	Ready   bool
	StartMs int64
	Resets  int
}

// ActivePiece bundles the falling piece with its derived ghost and its
// lock-delay timer.
type ActivePiece struct {
	Piece Tetromino
	Ghost Tetromino
	Timer LockTimer
}

// HoldSlot is the stash. Used flips true when the slot is consumed and
// is cleared again by the next lock transition.
type HoldSlot struct {
	Piece    Tetromino
	Occupied bool
	Used     bool
}

// Metrics aggregates scoring, leveling and timing counters. All times
// are driver-supplied elapsed milliseconds; the engine has no clock of
// its own.
type Metrics struct {
	Score    int
	HiScore  int
	Level    int
	Combo    int
	MaxCombo int

	LockCount   int
	RowsCleared int
	ClearAction string
	HoldCount   int

	StartMs   int64
	CurrentMs int64
	EndMs     int64

	// PrevGravityMs advances by exactly one gravity interval per drop,
	// never snapping to the current time, so irregular tick delivery
	// cannot accumulate drift.
	PrevGravityMs float64
}

// State is one immutable snapshot of the whole game. Reductions replace
// it wholesale; nothing is mutated in place.
type State struct {
	Active   ActivePiece
	Next     Tetromino
	Bag      Bag
	Hold     HoldSlot
	Field    PlayField
	Metrics  Metrics
	GameOver bool
	Paused   bool
}

// NewState builds the deterministic initial state for a seed: a fresh
// field, the first two bag draws as active and next piece, and zeroed
// metrics at level StartLevel.
func NewState(seed int64) State {
	bag := NewBag(seed)
	active := NewTetromino(bag.Value())
	bag = bag.Next()
	next := NewTetromino(bag.Value())

	s := State{
		Next:    next,
		Bag:     bag,
		Field:   NewPlayField(FieldWidth, FieldHeight),
		Metrics: Metrics{Level: StartLevel},
	}
	return placePiece(s, active, false)
}

// down is the unit gravity step.
var down = core.Pos{X: 0, Y: 1}

// ghostFor computes the landing preview: the piece translated downward
// until the next row would collide, with its color tag cleared.
func ghostFor(f PlayField, p Tetromino) Tetromino {
	g := p.WithoutColor()
	for !IsColliding(f, g.Translate(down)) {
		g = g.Translate(down)
	}
	return g
}

// resting reports whether the piece, moved one row down, would collide.
func resting(f PlayField, p Tetromino) bool {
	return IsColliding(f, p.Translate(down))
}

// placePiece installs p as the active piece, recomputes the ghost and
// re-evaluates the lock-delay state. rearmed marks a successful player
// move or rotation, which re-arms a grounded timer up to the reset cap;
// reaching the cap only stops further re-arms, it never locks early.
func placePiece(s State, p Tetromino, rearmed bool) State {
	s.Active.Piece = p
	s.Active.Ghost = ghostFor(s.Field, p)

	t := s.Active.Timer
	switch {
	case !resting(s.Field, p):
		t.Ready = false
	case !t.Ready:
		t.Ready = true
		t.StartMs = s.Metrics.CurrentMs
	case rearmed && t.Resets < LockDelayResetCap:
		t.StartMs = s.Metrics.CurrentMs
		t.Resets++
	}
	s.Active.Timer = t
	return s
}
