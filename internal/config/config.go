// Package config loads the zonemeter process's TOML configuration,
// following the teacher's nested-struct-per-concern layout and
// Load/defaults() split (internal/config/config.go in the teacher tree).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Capture CaptureConfig `toml:"capture"`
	Schema  SchemaConfig  `toml:"schema"`
	Logging LoggingConfig `toml:"logging"`
}

// CaptureConfig governs the pipeline's single-consumer channel between the
// (external) capture mechanism and the core goroutine, and the port filter
// applied to incoming datagrams (spec §5, §6).
type CaptureConfig struct {
	PhotonPort      uint16 `toml:"photon_port"`
	QueueSize       int    `toml:"queue_size"`
	MaxPendingFrags int    `toml:"max_pending_fragments"`
}

// SchemaConfig points at the build-time-generated static item table spec §6
// describes as an external artifact. An empty path means "use the table
// embedded in the binary".
type SchemaConfig struct {
	ItemTablePath string `toml:"item_table_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Default returns the built-in configuration, unmodified by any file.
func Default() *Config {
	return defaults()
}

// Load reads and parses a TOML file at path, applying it over defaults().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Capture: CaptureConfig{
			PhotonPort:      5056,
			QueueSize:       4096,
			MaxPendingFrags: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
