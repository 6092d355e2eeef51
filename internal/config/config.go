// Package config loads the kernel simulator's boot configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Boot is the top-level boot-time configuration, grounded on
// majorcontext-moat/internal/config.Config's plain-struct + yaml-tag shape.
type Boot struct {
	// HUDEnabled toggles the task-list HUD region; disabling it still
	// reserves the rows (spec §3 fixes the partition at compile time), it
	// just skips drawing into them.
	HUDEnabled bool `yaml:"hud_enabled"`

	// HeartbeatTickMillis is how long the host waits between resuming the
	// scheduler, i.e. the wall-clock rate of one cooperative round.
	HeartbeatTickMillis int `yaml:"heartbeat_tick_ms"`

	// Banner is printed once by kernel.Boot, before the shell's first prompt.
	Banner string `yaml:"banner"`
}

// TickInterval returns HeartbeatTickMillis as a time.Duration.
func (b Boot) TickInterval() time.Duration {
	return time.Duration(b.HeartbeatTickMillis) * time.Millisecond
}

// Default returns the configuration used when no boot file is given.
func Default() Boot {
	return Boot{
		HUDEnabled:          true,
		HeartbeatTickMillis: 200,
		Banner:              "miniker ready.",
	}
}

// Load reads and parses a boot config file, filling any field the file
// omits from Default.
func Load(path string) (Boot, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Boot{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Boot{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
