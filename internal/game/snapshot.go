package game

import "github.com/velikanov/blockfall/internal/engine"

// Phase labels the session state for snapshots and replay logs.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
)

// Snapshot captures the observable game state for determinism testing
// and replay verification. Two runs with the same seed and input stream
// must produce identical snapshots at every tick.
type Snapshot struct {
	Tick        uint64
	ElapsedMs   int64
	Score       int
	HiScore     int
	Level       int
	Lines       int
	Combo       int
	MaxCombo    int
	LockCount   int
	HoldCount   int
	ActiveType  engine.PieceType
	ActiveX     int
	ActiveY     int
	ActiveRot   int
	GhostY      int
	NextType    engine.PieceType
	HoldType    engine.PieceType
	HoldSet     bool
	BagSeed     uint32
	BagPointer  int
	ClearAction string
	Phase       Phase
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	m := s.Metrics

	phase := PhasePlaying
	switch {
	case s.GameOver:
		phase = PhaseGameOver
	case s.Paused:
		phase = PhasePaused
	}

	snap := Snapshot{
		Tick:        g.tick,
		ElapsedMs:   g.elapsedMs,
		Score:       m.Score,
		HiScore:     m.HiScore,
		Level:       m.Level,
		Lines:       m.RowsCleared,
		Combo:       m.Combo,
		MaxCombo:    m.MaxCombo,
		LockCount:   m.LockCount,
		HoldCount:   m.HoldCount,
		ActiveType:  s.Active.Piece.Type,
		ActiveX:     s.Active.Piece.Pos.X,
		ActiveY:     s.Active.Piece.Pos.Y,
		ActiveRot:   s.Active.Piece.Rotation,
		GhostY:      s.Active.Ghost.Pos.Y,
		NextType:    s.Next.Type,
		BagSeed:     s.Bag.Seed,
		BagPointer:  s.Bag.Pointer,
		ClearAction: m.ClearAction,
		Phase:       phase,
	}
	if s.Hold.Occupied {
		snap.HoldType = s.Hold.Piece.Type
		snap.HoldSet = true
	}
	return snap
}
