package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration. It mirrors the
// embedded YAML and serves as the base layer for partial config files.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate:  100,
			ShowGhost: true,
			Seed:      0,
		},
		Input: InputConfig{
			DASMs: 167,
			ARRMs: 33,
		},
		Storage: StorageConfig{
			DBPath: "",
		},
	}
}

// DefaultYAML returns the embedded default config, for `config init`.
func DefaultYAML() []byte {
	return defaultYAML
}
