// Package config loads driver configuration from TOML, in the style of the
// teacher codebase's world-file header parsing (internal/tqw), which reads
// its structured config the same way via github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DriverConfig is the on-disk shape of a driver's tunable knobs. The zero
// value is a valid config: no stack limit and tracing off.
type DriverConfig struct {
	Driver DriverSection `toml:"driver"`
	Lexer  LexerSection  `toml:"lexer"`
}

// DriverSection configures the parser driver itself.
type DriverSection struct {
	// MaxStackSize caps the parse stack; 0 means unlimited.
	MaxStackSize int `toml:"max_stack_size"`
	// Trace enables the driver's trace listener, writing one line per
	// shift/reduce/fallback/wildcard event to the configured logger.
	Trace bool `toml:"trace"`
}

// LexerSection configures the companion lexer.
type LexerSection struct {
	// ErrorSkip enables error-skip aggregation: unmatched runs of input are
	// collected and reported once the aggregation ends, instead of failing
	// the scan at the first unmatched position.
	ErrorSkip bool `toml:"error_skip"`
}

// Load reads and parses the TOML file at path into a DriverConfig. A
// missing or malformed file is reported as an error; callers that want a
// zero-value default on a missing file should check
// errors.Is(err, fs.ErrNotExist) themselves.
func Load(path string) (DriverConfig, error) {
	var cfg DriverConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return cfg, nil
}
