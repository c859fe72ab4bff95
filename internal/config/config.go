// Package config provides YAML-based configuration loading and feel
// presets for the blockfall platform.
package config

// Config is the root configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Input   InputConfig   `yaml:"input"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig controls the simulation loop.
type GameConfig struct {
	TickRate  int   `yaml:"tick_rate"`  // simulation ticks per second
	ShowGhost bool  `yaml:"show_ghost"` // draw the landing preview
	Seed      int64 `yaml:"seed"`       // 0 picks a time-based seed
}

// InputConfig controls horizontal auto-repeat timing.
type InputConfig struct {
	DASMs int64 `yaml:"das_ms"` // delay before a held key repeats
	ARRMs int64 `yaml:"arr_ms"` // interval between repeats
}

// StorageConfig controls run persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // empty resolves to ~/.blockfall/blockfall.db
}

// FeelPreset names a bundled input tuning.
type FeelPreset string

const (
	FeelDefault FeelPreset = "default"
	FeelSnappy  FeelPreset = "snappy"
	FeelRelaxed FeelPreset = "relaxed"
)

// ApplyPreset overwrites the input tuning with a named preset. Unknown
// presets leave the config untouched.
func ApplyPreset(cfg *Config, preset FeelPreset) {
	switch preset {
	case FeelDefault:
		cfg.Input = InputConfig{DASMs: 167, ARRMs: 33}
	case FeelSnappy:
		cfg.Input = InputConfig{DASMs: 100, ARRMs: 16}
	case FeelRelaxed:
		cfg.Input = InputConfig{DASMs: 250, ARRMs: 50}
	}
}

// Normalize replaces out-of-range values with their defaults so a
// partial or damaged config file cannot stall the game loop.
func (c *Config) Normalize() {
	def := Default()
	if c.Game.TickRate <= 0 || c.Game.TickRate > 1000 {
		c.Game.TickRate = def.Game.TickRate
	}
	if c.Input.DASMs <= 0 {
		c.Input.DASMs = def.Input.DASMs
	}
	if c.Input.ARRMs <= 0 {
		c.Input.ARRMs = def.Input.ARRMs
	}
}
