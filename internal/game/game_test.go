package game

import (
	"strings"
	"testing"

	"github.com/velikanov/blockfall/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and input script must produce
	// identical snapshots at every tick.
	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	input := core.NewInputFrame()
	for i := 0; i < 500; i++ {
		input.Clear()
		switch {
		case i%97 == 10:
			input.Set(core.ActionRotateCW)
		case i%97 == 30:
			input.Set(core.ActionLeft)
		case i%97 == 50:
			input.Set(core.ActionSoftDrop)
		case i%97 == 90:
			input.Set(core.ActionHardDrop)
		}

		g1.Step(input)
		g2.Step(input)

		if g1.Snapshot() != g2.Snapshot() {
			t.Fatalf("snapshots diverge at tick %d:\n%+v\nvs\n%+v", i, g1.Snapshot(), g2.Snapshot())
		}
	}
}

func TestClockFreezesWhilePaused(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	input := core.NewInputFrame()
	for i := 0; i < 10; i++ {
		g.Step(input)
	}
	before := g.ElapsedMs()

	input.Set(core.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	input.Clear()
	for i := 0; i < 50; i++ {
		g.Step(input)
	}
	if g.ElapsedMs() != before {
		t.Errorf("elapsed = %d, expected frozen at %d while paused", g.ElapsedMs(), before)
	}

	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused {
		t.Fatal("game should have resumed")
	}
	if g.ElapsedMs() <= before {
		t.Error("clock should advance again after resuming")
	}
}

func TestGravityThroughAdapter(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))
	startY := g.EngineState().Active.Piece.Pos.Y

	// Level 1 gravity is 800 ms per row; 100 ticks at 10 ms cross it once.
	input := core.NewInputFrame()
	for i := 0; i < 100; i++ {
		g.Step(input)
	}

	if got := g.EngineState().Active.Piece.Pos.Y; got != startY+1 {
		t.Errorf("y = %d, expected exactly one row of gravity after 1000 ms", got)
	}
}

func TestHardDropLocksImmediately(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	input := core.NewInputFrame()
	input.Set(core.ActionHardDrop)
	g.Step(input)

	snap := g.Snapshot()
	if snap.LockCount != 1 {
		t.Errorf("LockCount = %d, expected 1 after hard drop", snap.LockCount)
	}
	if snap.Score == 0 {
		t.Error("hard drop from spawn should score its descent")
	}
}

func TestAutoRepeatChargesToWall(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))

	// First press fires at once, repeats kick in after the DAS delay.
	// 50 ticks at 10 ms is enough charge to reach the wall from spawn.
	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	moves := 0
	prevX := g.EngineState().Active.Piece.Pos.X
	for i := 0; i < 50; i++ {
		g.Step(input)
		if x := g.EngineState().Active.Piece.Pos.X; x != prevX {
			moves++
			prevX = x
		}
		if g.Snapshot().LockCount > 0 {
			t.Fatal("piece locked mid-test, lower the tick count")
		}
	}

	if moves < 2 {
		t.Errorf("moves = %d, holding the key should auto-repeat", moves)
	}
	if prevX != 0 {
		t.Errorf("x = %d, expected charged to the left wall", prevX)
	}
}

func TestAutoRepeatResetsOnRelease(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	startX := g.EngineState().Active.Piece.Pos.X

	held := core.NewInputFrame()
	held.Set(core.ActionLeft)
	released := core.NewInputFrame()

	// Tap, release, tap: two single moves, no repeat.
	g.Step(held)
	g.Step(released)
	g.Step(held)

	if got := g.EngineState().Active.Piece.Pos.X; got != startX-2 {
		t.Errorf("x = %d, expected two tap moves from %d", got, startX)
	}
}

func TestRestartAfterTopOut(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))

	// Hard-drop in place until the stack tops out.
	input := core.NewInputFrame()
	input.Set(core.ActionHardDrop)
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(input)
	}
	if !g.State().GameOver {
		t.Fatal("repeated center drops should top the stack out")
	}
	finalScore := g.State().Score

	input.Clear()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.State().GameOver {
		t.Fatal("restart should start a fresh session")
	}
	snap := g.Snapshot()
	if snap.HiScore < finalScore {
		t.Errorf("hiScore = %d, expected at least the finished run's %d", snap.HiScore, finalScore)
	}
}

func TestRestartIgnoredMidGame(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.Snapshot().LockCount != 0 || g.State().GameOver {
		t.Error("restart during play should change nothing")
	}
}

func TestRenderFrame(t *testing.T) {
	g := New()
	g.Reset(testConfig(4))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "NEXT") {
		t.Error("frame should contain the next-piece panel")
	}
	if !strings.Contains(content, "Score") {
		t.Error("frame should contain the score line")
	}
	if !strings.ContainsRune(content, blockRune) {
		t.Error("frame should contain the active piece")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := New()
	g.Reset(testConfig(4))

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused frame should show the pause overlay")
	}

	input.Clear()
	input.Set(core.ActionHardDrop)
	g2 := New()
	g2.Reset(testConfig(9))
	for i := 0; i < 200 && !g2.State().GameOver; i++ {
		g2.Step(input)
	}
	g2.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("finished frame should show the game-over overlay")
	}
}

func TestTuningDefaultsApplied(t *testing.T) {
	g := NewWithTuning(Tuning{})
	if g.tuning.DASMs != DefaultDASMs || g.tuning.ARRMs != DefaultARRMs {
		t.Errorf("zero tuning should fall back to defaults, got %+v", g.tuning)
	}
}
