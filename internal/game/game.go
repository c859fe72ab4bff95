// Package game adapts the pure engine to the tick-driven game loop: it
// owns the wall clock, maps input frames to effects, and renders the
// engine state onto a screen buffer.
package game

import (
	"github.com/velikanov/blockfall/internal/core"
	"github.com/velikanov/blockfall/internal/engine"
)

// Auto-repeat defaults for horizontal movement, in milliseconds.
// DAS is the initial delay before a held key starts repeating, ARR the
// interval between repeats once it has.
const (
	DefaultDASMs = 167
	DefaultARRMs = 33
)

// Tuning holds the adjustable feel parameters of the adapter.
type Tuning struct {
	DASMs     int64
	ARRMs     int64
	ShowGhost bool
}

// DefaultTuning returns the standard feel parameters.
func DefaultTuning() Tuning {
	return Tuning{
		DASMs:     DefaultDASMs,
		ARRMs:     DefaultARRMs,
		ShowGhost: true,
	}
}

// repeater implements delayed auto shift for one direction. The first
// press fires immediately; holding past the DAS threshold fires again
// every ARR interval.
type repeater struct {
	active      bool
	heldMs      int64
	sinceFireMs int64
}

// advance accumulates hold time and reports whether the action should
// fire this tick. held is whether the key is down this frame.
func (r *repeater) advance(held bool, dtMs, dasMs, arrMs int64) bool {
	if !held {
		r.active = false
		return false
	}
	if !r.active {
		r.active = true
		r.heldMs = 0
		r.sinceFireMs = 0
		return true
	}
	r.heldMs += dtMs
	r.sinceFireMs += dtMs
	if r.heldMs >= dasMs && r.sinceFireMs >= arrMs {
		r.sinceFireMs = 0
		return true
	}
	return false
}

// Game drives a single falling-block session. All rule decisions live
// in the engine; the adapter contributes the clock, input repeat, and
// rendering.
type Game struct {
	state  engine.State
	tuning Tuning

	tick      uint64
	elapsedMs int64 // pause-aware clock fed to the engine
	msPerTick int64

	left  repeater
	right repeater

	screenW int
	screenH int
}

// New creates a game with default tuning. Call Reset before stepping.
func New() *Game {
	return &Game{tuning: DefaultTuning()}
}

// NewWithTuning creates a game with custom feel parameters.
func NewWithTuning(t Tuning) *Game {
	if t.DASMs <= 0 {
		t.DASMs = DefaultDASMs
	}
	if t.ARRMs <= 0 {
		t.ARRMs = DefaultARRMs
	}
	return &Game{tuning: t}
}

// ID returns the game identifier used for storage keys.
func (g *Game) ID() string {
	return "blockfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset initializes/restarts the game from the given configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.msPerTick = int64(1000 / tickRate)
	if g.msPerTick <= 0 {
		g.msPerTick = 1
	}

	g.state = engine.NewState(cfg.Seed)
	g.tuning.ShowGhost = cfg.ShowGhost
	g.tick = 0
	g.elapsedMs = 0
	g.left = repeater{}
	g.right = repeater{}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Step advances the game by one simulation tick. Input actions are
// applied in a fixed order so a frame carrying several actions resolves
// the same way on every run: pause and restart first, then hold,
// rotation, horizontal movement, soft drop, and hard drop, then the
// clock tick that drives gravity and lock delay.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionPause) && !g.state.GameOver {
		g.state = engine.Reduce(g.state, engine.Pause{Flag: !g.state.Paused})
	}
	if input.Has(core.ActionRestart) && g.state.GameOver {
		g.state = engine.Reduce(g.state, engine.Restart{})
		g.left = repeater{}
		g.right = repeater{}
	}

	if g.state.Paused {
		// The clock freezes: gravity and lock delay resume exactly
		// where they stopped.
		return core.StepResult{State: g.State()}
	}
	g.elapsedMs += g.msPerTick

	if input.Has(core.ActionHold) {
		g.state = engine.Reduce(g.state, engine.Hold{})
	}
	if input.Has(core.ActionRotateCW) {
		g.state = engine.Reduce(g.state, engine.Rotate{Dir: 1})
	}
	if input.Has(core.ActionRotateCCW) {
		g.state = engine.Reduce(g.state, engine.Rotate{Dir: -1})
	}

	if g.left.advance(input.Has(core.ActionLeft), g.msPerTick, g.tuning.DASMs, g.tuning.ARRMs) {
		g.state = engine.Reduce(g.state, engine.Translate{DX: -1})
	}
	if g.right.advance(input.Has(core.ActionRight), g.msPerTick, g.tuning.DASMs, g.tuning.ARRMs) {
		g.state = engine.Reduce(g.state, engine.Translate{DX: 1})
	}

	if input.Has(core.ActionSoftDrop) {
		g.state = engine.Reduce(g.state, engine.SoftDrop{DY: 1})
	}
	if input.Has(core.ActionHardDrop) {
		g.state = engine.Reduce(g.state, engine.HardDrop{})
	}

	g.state = engine.Reduce(g.state, engine.Tick{ElapsedMs: g.elapsedMs})

	return core.StepResult{State: g.State()}
}

// SeedHiScore raises the session high score to a previously recorded
// one, so the HUD shows the all-time best from the first frame.
func (g *Game) SeedHiScore(hi int) {
	if hi > g.state.Metrics.HiScore {
		g.state.Metrics.HiScore = hi
	}
}

// Apply feeds a raw effect to the engine, bypassing input mapping.
// Replay playback uses this to re-run a recorded effect stream.
func (g *Game) Apply(e engine.Effect) {
	g.state = engine.Reduce(g.state, e)
}

// State returns the platform-facing summary of the session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Metrics.Score,
		GameOver: g.state.GameOver,
		Paused:   g.state.Paused,
	}
}

// EngineState exposes the full rule-engine state for rendering and
// persistence. The returned value is a snapshot; mutating it does not
// affect the running game.
func (g *Game) EngineState() engine.State {
	return g.state
}

// ElapsedMs returns the pause-aware session clock.
func (g *Game) ElapsedMs() int64 {
	return g.elapsedMs
}

// Tick returns the number of simulation steps taken since Reset.
func (g *Game) Tick() uint64 {
	return g.tick
}
