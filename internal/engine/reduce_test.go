package engine

import (
	"reflect"
	"testing"

	"github.com/velikanov/blockfall/internal/core"
)

func TestNewStateDeterministic(t *testing.T) {
	a := NewState(424242)
	b := NewState(424242)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("two fresh states with the same seed must be identical")
	}

	// The same holds piece by piece across the stream.
	for i := 0; i < 30; i++ {
		if a.Bag.Value() != b.Bag.Value() {
			t.Fatalf("bag draw %d differs", i)
		}
		a.Bag = a.Bag.Next()
		b.Bag = b.Bag.Next()
	}
}

func TestNewStateWiring(t *testing.T) {
	s := NewState(7)

	if s.Bag.Value() != s.Next.Type {
		t.Error("the bag node must point at the queued next piece")
	}
	if s.GameOver || s.Paused {
		t.Error("fresh state must be running")
	}
	if s.Metrics.Level != StartLevel {
		t.Errorf("fresh level = %d, expected %d", s.Metrics.Level, StartLevel)
	}
	if s.Field.Width() != FieldWidth || s.Field.Height() != FieldHeight {
		t.Errorf("field is %dx%d, expected %dx%d",
			s.Field.Width(), s.Field.Height(), FieldWidth, FieldHeight)
	}
	if s.Active.Ghost.Pos.X != s.Active.Piece.Pos.X {
		t.Error("ghost must share the active piece's column")
	}
}

func TestTranslateMovesPiece(t *testing.T) {
	s := NewState(1)
	before := s.Active.Piece.Pos

	s2 := Reduce(s, Translate{DX: 1})
	if s2.Active.Piece.Pos != before.Add(core.Pos{X: 1}) {
		t.Errorf("pos = %+v, expected one cell right of %+v", s2.Active.Piece.Pos, before)
	}
	if s2.Active.Ghost.Pos.X != s2.Active.Piece.Pos.X {
		t.Error("ghost must be recomputed after a translate")
	}
}

func TestTranslateRejectionIsIdentity(t *testing.T) {
	s := NewState(1)

	blocked := Reduce(s, Translate{DX: -FieldWidth})
	if !reflect.DeepEqual(s, blocked) {
		t.Error("a colliding translate must return the state unchanged")
	}

	blocked = Reduce(s, Translate{DX: FieldWidth})
	if !reflect.DeepEqual(s, blocked) {
		t.Error("a colliding translate must return the state unchanged")
	}
}

func TestRotateThenBackRestoresState(t *testing.T) {
	s := NewState(99)
	before := s.Active.Piece

	s = Reduce(s, Rotate{Dir: 1})
	s = Reduce(s, Rotate{Dir: -1})

	after := s.Active.Piece
	if after.Rotation != before.Rotation {
		t.Errorf("rotation = %d, expected %d", after.Rotation, before.Rotation)
	}
	if after.Pos != before.Pos {
		t.Errorf("pos = %+v, expected %+v", after.Pos, before.Pos)
	}
}

func TestRotateRejectedWhenNoKickFits(t *testing.T) {
	s := NewState(3)

	// Box the piece in completely: every cell around the spawn area
	// filled except the piece's own cells.
	for y := range s.Field.Grid {
		for x := range s.Field.Grid[y] {
			s.Field.Grid[y][x] = core.Cell{Filled: true, Color: core.ColorGray}
		}
	}
	for y, row := range s.Active.Piece.Grid {
		for x, cell := range row {
			if cell.Filled {
				at := s.Active.Piece.Pos.Add(core.Pos{X: x, Y: y})
				s.Field.Grid[at.Y][at.X] = core.Cell{}
			}
		}
	}
	if s.Active.Piece.Type == PieceO {
		t.Skip("O rotates in place, it can never be rejected")
	}

	rotated := Reduce(s, Rotate{Dir: 1})
	if rotated.Active.Piece.Rotation != s.Active.Piece.Rotation {
		t.Error("rejected rotation must leave the rotation state unchanged")
	}
	if rotated.Active.Piece.Pos != s.Active.Piece.Pos {
		t.Error("rejected rotation must leave the position unchanged")
	}
}

func TestSoftDropScoresOnSuccess(t *testing.T) {
	s := NewState(1)
	before := s.Active.Piece.Pos

	s2 := Reduce(s, SoftDrop{DY: 1})
	if s2.Active.Piece.Pos.Y != before.Y+1 {
		t.Errorf("soft drop should move the piece one row down")
	}
	if s2.Metrics.Score != s.Metrics.Score+SoftDropPoints {
		t.Errorf("score = %d, expected +%d", s2.Metrics.Score, SoftDropPoints)
	}

	// Resting on the floor: rejected, no score.
	rested := Reduce(s, Translate{DY: s.Active.Ghost.Pos.Y - before.Y})
	blocked := Reduce(rested, SoftDrop{DY: 1})
	if blocked.Metrics.Score != rested.Metrics.Score {
		t.Error("a rejected soft drop must not score")
	}
}

func TestHardDropLandsOnGhostAndLocksOnce(t *testing.T) {
	s := NewState(55)
	ghost := s.Active.Ghost
	rows := ghost.Pos.Y - s.Active.Piece.Pos.Y
	nextType := s.Next.Type

	s2 := Reduce(s, HardDrop{})

	if s2.Metrics.LockCount != 1 {
		t.Fatalf("LockCount = %d, expected exactly one lock", s2.Metrics.LockCount)
	}
	if s2.Metrics.Score != HardDropPointsPerRow*rows {
		t.Errorf("score = %d, expected %d", s2.Metrics.Score, HardDropPointsPerRow*rows)
	}

	// The locked piece occupies exactly its pre-drop ghost cells.
	for y, row := range ghost.Grid {
		for x, cell := range row {
			if !cell.Filled {
				continue
			}
			at := ghost.Pos.Add(core.Pos{X: x, Y: y})
			if !s2.Field.Grid[at.Y][at.X].Filled {
				t.Errorf("field cell (%d,%d) should hold the locked piece", at.X, at.Y)
			}
		}
	}

	if s2.Active.Piece.Type != nextType {
		t.Errorf("active after lock = %s, expected promoted next piece %s",
			s2.Active.Piece.Type, nextType)
	}
}

func TestHoldFirstUse(t *testing.T) {
	s := NewState(8)
	activeType := s.Active.Piece.Type
	nextType := s.Next.Type

	s2 := Reduce(s, Hold{})

	if !s2.Hold.Occupied || !s2.Hold.Used {
		t.Fatal("hold slot should be occupied and marked used")
	}
	if s2.Hold.Piece.Type != activeType {
		t.Errorf("held piece = %s, expected %s", s2.Hold.Piece.Type, activeType)
	}
	if s2.Active.Piece.Type != nextType {
		t.Errorf("active = %s, expected promoted next %s", s2.Active.Piece.Type, nextType)
	}
	if s2.Next.Type != s2.Bag.Value() {
		t.Error("a fresh next piece must be drawn from the bag")
	}
	if s2.Metrics.HoldCount != 1 {
		t.Errorf("HoldCount = %d, expected 1", s2.Metrics.HoldCount)
	}
	if s2.Active.Timer != (LockTimer{}) && !s2.Active.Timer.Ready {
		t.Error("hold must reset the lock timer")
	}
}

func TestHoldReuseRejectedUntilLock(t *testing.T) {
	s := Reduce(NewState(8), Hold{})

	again := Reduce(s, Hold{})
	if !reflect.DeepEqual(s, again) {
		t.Error("a second hold before locking must be an identity transition")
	}

	// Locking re-enables the stash.
	locked := Reduce(s, HardDrop{})
	if locked.Hold.Used {
		t.Error("lock transition must clear hold.used")
	}

	swapped := Reduce(locked, Hold{})
	if swapped.Metrics.HoldCount != 2 {
		t.Errorf("HoldCount = %d, expected 2", swapped.Metrics.HoldCount)
	}
	if swapped.Active.Piece.Type != s.Hold.Piece.Type {
		t.Error("an occupied hold slot must swap with the active piece")
	}
}

// groundActive drops the active piece onto its ghost row.
func groundActive(s State) State {
	return Reduce(s, Translate{DY: s.Active.Ghost.Pos.Y - s.Active.Piece.Pos.Y})
}

func TestLockDelayArming(t *testing.T) {
	s := NewState(17)
	if s.Active.Timer.Ready {
		t.Fatal("a spawned piece over an empty field must be airborne")
	}

	s = groundActive(s)
	if !s.Active.Timer.Ready {
		t.Fatal("a piece resting on the floor must be grounded")
	}
}

func TestLockDelayExpiryLocksOnTick(t *testing.T) {
	s := groundActive(NewState(17))

	// Within the delay: no lock.
	running := Reduce(s, Tick{ElapsedMs: LockDelayMs})
	if running.Metrics.LockCount != 0 {
		t.Error("the piece must not lock before the delay has elapsed")
	}

	expired := Reduce(s, Tick{ElapsedMs: LockDelayMs + 1})
	if expired.Metrics.LockCount != 1 {
		t.Errorf("LockCount = %d, expected lock after delay expiry", expired.Metrics.LockCount)
	}
}

func TestLockDelayRearmOnMovement(t *testing.T) {
	s := groundActive(NewState(17))
	s.Metrics.CurrentMs = 400

	moved := Reduce(s, Translate{DX: 1})
	if moved.Active.Timer.StartMs != 400 {
		t.Errorf("timerStart = %d, expected re-armed to 400", moved.Active.Timer.StartMs)
	}
	if moved.Active.Timer.Resets != 1 {
		t.Errorf("resets = %d, expected 1", moved.Active.Timer.Resets)
	}

	// The re-armed timer postpones the lock.
	ticked := Reduce(moved, Tick{ElapsedMs: 600})
	if ticked.Metrics.LockCount != 0 {
		t.Error("lock must wait for the re-armed timer")
	}
}

func TestLockDelayResetCap(t *testing.T) {
	s := groundActive(NewState(17))
	s.Active.Timer.Resets = LockDelayResetCap
	s.Metrics.CurrentMs = 400

	moved := Reduce(s, Translate{DX: 1})
	if moved.Active.Timer.StartMs != s.Active.Timer.StartMs {
		t.Error("movement past the reset cap must not re-arm the timer")
	}
	if moved.Active.Timer.Resets != LockDelayResetCap {
		t.Error("resets must not grow past the cap")
	}

	// But the piece is not locked early: it waits out the current timer.
	if moved.Metrics.LockCount != 0 {
		t.Error("reaching the cap must not lock the piece immediately")
	}
}

func TestTickGravityDropsOneRow(t *testing.T) {
	s := NewState(2) // level 1: 48 frames -> 800 ms per row
	startY := s.Active.Piece.Pos.Y

	idle := Reduce(s, Tick{ElapsedMs: 700})
	if idle.Active.Piece.Pos.Y != startY {
		t.Error("no gravity before the interval elapses")
	}

	dropped := Reduce(s, Tick{ElapsedMs: 801})
	if dropped.Active.Piece.Pos.Y != startY+1 {
		t.Errorf("y = %d, expected one row of gravity", dropped.Active.Piece.Pos.Y)
	}
	if dropped.Metrics.CurrentMs != 801 {
		t.Errorf("currentTime = %d, expected 801", dropped.Metrics.CurrentMs)
	}
}

func TestTickGravityDoesNotDrift(t *testing.T) {
	s := NewState(2)
	startY := s.Active.Piece.Pos.Y

	// Jittered ticks: the gravity reference advances by exactly one
	// interval per drop, so late ticks do not push the schedule back.
	s = Reduce(s, Tick{ElapsedMs: 950})
	if s.Metrics.PrevGravityMs != 800 {
		t.Errorf("gravity reference = %f, expected 800", s.Metrics.PrevGravityMs)
	}
	s = Reduce(s, Tick{ElapsedMs: 1601})
	if s.Active.Piece.Pos.Y != startY+2 {
		t.Errorf("y = %d, expected two rows after two intervals", s.Active.Piece.Pos.Y)
	}
	if s.Metrics.PrevGravityMs != 1600 {
		t.Errorf("gravity reference = %f, expected 1600", s.Metrics.PrevGravityMs)
	}
}

func TestLockTransitionScoring(t *testing.T) {
	s := NewState(4)

	// Bottom row filled except the four cells the I piece will occupy.
	for x := 0; x < FieldWidth; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{Filled: true, Color: core.ColorGray}
	}
	for x := 3; x < 7; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{}
	}

	p := NewTetromino(PieceI)
	p.Pos = core.Pos{X: 3, Y: FieldHeight - 2} // filled row lands on the bottom row
	s = placePiece(s, p, false)

	s = lockPiece(s)

	if s.Metrics.RowsCleared != 1 {
		t.Fatalf("rowsCleared = %d, expected 1", s.Metrics.RowsCleared)
	}
	if s.Metrics.Score != clearScores[1]*StartLevel {
		t.Errorf("score = %d, expected %d", s.Metrics.Score, clearScores[1]*StartLevel)
	}
	if s.Metrics.Combo != 1 || s.Metrics.MaxCombo != 1 {
		t.Errorf("combo = %d/%d, expected 1/1", s.Metrics.Combo, s.Metrics.MaxCombo)
	}
	if s.Metrics.ClearAction != "single" {
		t.Errorf("clearAction = %q, expected %q", s.Metrics.ClearAction, "single")
	}

	// The bottom row is compacted away.
	for x := 0; x < FieldWidth; x++ {
		if s.Field.Grid[FieldHeight-1][x].Filled {
			t.Errorf("bottom cell %d should be empty after the clear", x)
		}
	}
}

func TestComboScoring(t *testing.T) {
	s := NewState(4)
	s.Metrics.Combo = 2
	s.Metrics.MaxCombo = 2

	for x := 0; x < FieldWidth; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{Filled: true, Color: core.ColorGray}
	}
	for x := 3; x < 7; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{}
	}
	p := NewTetromino(PieceI)
	p.Pos = core.Pos{X: 3, Y: FieldHeight - 2}
	s = placePiece(s, p, false)

	s = lockPiece(s)

	// Bonus uses the combo value before the increment.
	expected := (clearScores[1] + ComboBonus*2) * StartLevel
	if s.Metrics.Score != expected {
		t.Errorf("score = %d, expected %d", s.Metrics.Score, expected)
	}
	if s.Metrics.Combo != 3 || s.Metrics.MaxCombo != 3 {
		t.Errorf("combo = %d/%d, expected 3/3", s.Metrics.Combo, s.Metrics.MaxCombo)
	}
}

func TestComboResetsOnBlankLock(t *testing.T) {
	s := NewState(4)
	s.Metrics.Combo = 3
	s.Metrics.MaxCombo = 3

	s = groundActive(s)
	s = lockPiece(s)

	if s.Metrics.Combo != 0 {
		t.Errorf("combo = %d, expected reset to 0", s.Metrics.Combo)
	}
	if s.Metrics.MaxCombo != 3 {
		t.Errorf("maxCombo = %d, expected preserved", s.Metrics.MaxCombo)
	}
}

func TestLevelProgression(t *testing.T) {
	s := NewState(4)
	s.Metrics.RowsCleared = LinesPerLevel - 1

	for x := 0; x < FieldWidth; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{Filled: true, Color: core.ColorGray}
	}
	for x := 3; x < 7; x++ {
		s.Field.Grid[FieldHeight-1][x] = core.Cell{}
	}
	p := NewTetromino(PieceI)
	p.Pos = core.Pos{X: 3, Y: FieldHeight - 2}
	s = placePiece(s, p, false)

	s = lockPiece(s)

	if s.Metrics.Level != StartLevel+1 {
		t.Errorf("level = %d, expected %d", s.Metrics.Level, StartLevel+1)
	}
}

func TestLevelNeverExceedsMax(t *testing.T) {
	s := NewState(4)
	s.Metrics.RowsCleared = 100 * LinesPerLevel

	s = groundActive(s)
	s = lockPiece(s)

	if s.Metrics.Level != LevelMax {
		t.Errorf("level = %d, expected clamped to %d", s.Metrics.Level, LevelMax)
	}
}

func TestGameEndsWhenSpawnBlocked(t *testing.T) {
	s := NewState(21)
	s.Metrics.Score = 777
	s.Metrics.CurrentMs = 9000

	// Fill the spawn rows so the promoted piece collides immediately.
	for y := 0; y < 4; y++ {
		for x := 0; x < FieldWidth; x++ {
			s.Field.Grid[y][x] = core.Cell{Filled: true, Color: core.ColorGray}
		}
	}

	s = spawnNext(s)

	if !s.GameOver {
		t.Fatal("a blocked spawn must end the game")
	}
	if s.Metrics.HiScore != 777 {
		t.Errorf("hiScore = %d, expected captured score", s.Metrics.HiScore)
	}
	if s.Metrics.EndMs != 9000 {
		t.Errorf("endTime = %d, expected current time", s.Metrics.EndMs)
	}
}

func TestGameplayEffectsNoopAfterGameEnd(t *testing.T) {
	s := NewState(5)
	s.GameOver = true

	effects := []Effect{
		Translate{DX: 1},
		SoftDrop{DY: 1},
		HardDrop{},
		Rotate{Dir: 1},
		Hold{},
	}
	for _, e := range effects {
		if got := Reduce(s, e); !reflect.DeepEqual(s, got) {
			t.Errorf("%T must be an identity transition after game end", e)
		}
	}

	// Pause still works; Tick still carries the clock.
	if !Reduce(s, Pause{Flag: true}).Paused {
		t.Error("pause must work after game end")
	}
	ticked := Reduce(s, Tick{ElapsedMs: 1234})
	if ticked.Metrics.CurrentMs != 1234 {
		t.Error("tick must still update the clock after game end")
	}
	if ticked.Metrics.LockCount != 0 || ticked.Active.Piece.Pos != s.Active.Piece.Pos {
		t.Error("tick must not run gravity or locking after game end")
	}
}

func TestPauseSetsFlagUnconditionally(t *testing.T) {
	s := NewState(5)

	paused := Reduce(s, Pause{Flag: true})
	if !paused.Paused {
		t.Error("pause flag should be set")
	}
	resumed := Reduce(paused, Pause{Flag: false})
	if resumed.Paused {
		t.Error("pause flag should be cleared")
	}
}

func TestRestartOnlyAfterGameEnd(t *testing.T) {
	s := NewState(5)
	if got := Reduce(s, Restart{}); !reflect.DeepEqual(s, got) {
		t.Error("restart while the game is active must be an identity transition")
	}
}

func TestRestartPreservesHiScoreAndStream(t *testing.T) {
	s := NewState(11)
	nextType := s.Next.Type
	followerType := s.Bag.Next().Value()

	s.GameOver = true
	s.Metrics.Score = 1000
	s.Metrics.HiScore = 0
	s.Metrics.CurrentMs = 60000

	r := Reduce(s, Restart{})

	if r.GameOver {
		t.Fatal("restart must clear the game-over flag")
	}
	if r.Metrics.Score != 0 {
		t.Errorf("score = %d, expected 0", r.Metrics.Score)
	}
	if r.Metrics.HiScore != 1000 {
		t.Errorf("hiScore = %d, expected 1000", r.Metrics.HiScore)
	}

	// The previously queued piece leads; the bag stream continues.
	if r.Active.Piece.Type != nextType {
		t.Errorf("active = %s, expected promoted %s", r.Active.Piece.Type, nextType)
	}
	if r.Next.Type != followerType {
		t.Errorf("next = %s, expected continued stream %s", r.Next.Type, followerType)
	}

	// All time references reset to the current clock.
	if r.Metrics.StartMs != 60000 || r.Metrics.CurrentMs != 60000 {
		t.Error("start and current time must reset to the clock value")
	}
	if r.Metrics.PrevGravityMs != 60000 {
		t.Errorf("gravity reference = %f, expected 60000", r.Metrics.PrevGravityMs)
	}
}

func TestReduceUnknownEffectIsIdentity(t *testing.T) {
	s := NewState(5)
	if got := Reduce(s, nil); !reflect.DeepEqual(s, got) {
		t.Error("a nil effect must be an identity transition")
	}
}

func TestReplayDeterminism(t *testing.T) {
	script := []Effect{
		Translate{DX: -1}, Rotate{Dir: 1}, Tick{ElapsedMs: 100},
		SoftDrop{DY: 1}, Tick{ElapsedMs: 400}, Hold{},
		Translate{DX: 2}, Tick{ElapsedMs: 900}, HardDrop{},
		Rotate{Dir: -1}, Tick{ElapsedMs: 1500}, HardDrop{},
		Tick{ElapsedMs: 2200},
	}

	a := NewState(314159)
	b := NewState(314159)
	for _, e := range script {
		a = Reduce(a, e)
		b = Reduce(b, e)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("identical seeds and effect streams must produce identical states")
	}
}
