// Package engine implements the blockfall rule engine: a deterministic,
// side-effect-free state machine. An external driver folds an ordered
// stream of effects over a State value with Reduce; every reduction
// consumes one immutable input and produces one immutable output.
package engine

import "github.com/velikanov/blockfall/internal/core"

// Fixed gameplay constants. These are compile-time parameters and must
// not be made runtime-configurable: compatible behavior depends on the
// exact values.
const (
	FieldWidth  = 10
	FieldHeight = 20

	// LockDelayMs is the grace period after a piece becomes grounded
	// before it is irreversibly merged into the field.
	LockDelayMs = 500

	// LockDelayResetCap bounds how many times movement can re-arm the
	// grounded timer; once reached the piece waits out the current timer.
	LockDelayResetCap = 15

	// TickGranularityMs is the expected spacing of Tick effects.
	TickGranularityMs = 10

	TargetFPS = 60

	StartLevel    = 1
	LevelMax      = 15
	LinesPerLevel = 10

	ComboBonus           = 50
	SoftDropPoints       = 1
	HardDropPointsPerRow = 2
)

// clearScores maps rows cleared in a single lock to the base score tier.
var clearScores = [5]int{0, 100, 300, 500, 800}

// clearNames names the clear tiers for the metrics readout.
var clearNames = [5]string{"", "single", "double", "triple", "quad"}

// gravityFramesPerRow holds, per level (1-based), how many frames at
// TargetFPS the active piece waits before descending one row.
var gravityFramesPerRow = [LevelMax + 1]int{0, 48, 43, 38, 33, 28, 23, 18, 13, 8, 6, 5, 4, 3, 2, 1}

// gravityIntervalMs returns the gravity period in milliseconds for a
// level. The level is clamped so the table lookup can never miss.
func gravityIntervalMs(level int) float64 {
	lvl := core.Clamp(level, 1, LevelMax)
	return float64(gravityFramesPerRow[lvl]) / TargetFPS * 1000
}
