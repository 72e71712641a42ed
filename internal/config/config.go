// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers file and environment providers over the defaults.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StatePath is the JSON state snapshot file used by GET/PUT /state.
	StatePath string `koanf:"state_path"`

	// Tau is the Glicko-2 system constant constraining volatility change.
	Tau float64 `koanf:"tau"`

	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		StatePath:         "ladder-state.json",
		Tau:               0.5,
		MaxStandingsLimit: 500,
	}
}
