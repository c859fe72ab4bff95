package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Simulation ticks per second (default 100)
	Seed      int64 // RNG seed for deterministic gameplay
	ShowGhost bool  // Whether to draw the landing preview
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// The 100 Hz tick rate gives the engine its 10 ms time granularity.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  100,
		Seed:      0, // 0 means use current time in platform layer
		ShowGhost: true,
	}
}

// GameState summarizes the game status for the platform layer.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
