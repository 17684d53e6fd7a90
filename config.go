package cgdfa

import "errors"

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("cgdfa: invalid config")

// Config controls how a Regex executes its automaton.
//
// Results never depend on the configuration; only speed does.
//
// Example:
//
//	config := cgdfa.DefaultConfig().WithPrefilter(false)
//	re, err := cgdfa.NewWithConfig(a, config)
type Config struct {
	// EnableFastScan lets self-looping states skip runs of characters with
	// the memchr-backed loop scanner instead of stepping one at a time.
	// Default: true
	EnableFastScan bool

	// EnablePrefilter uses the automaton's literal prefixes to find
	// candidate match starts in search mode.
	// Default: true
	EnablePrefilter bool

	// MinPrefixLen is the length of the shortest prefix worth prefiltering
	// on. Automatons with a shorter prefix search without a prefilter.
	// Default: 1
	MinPrefixLen int
}

// DefaultConfig returns a configuration with all optimizations enabled.
func DefaultConfig() Config {
	return Config{
		EnableFastScan:  true,
		EnablePrefilter: true,
		MinPrefixLen:    1,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinPrefixLen: 1 to 64 (checked only when EnablePrefilter is set)
func (c Config) Validate() error {
	if c.EnablePrefilter && (c.MinPrefixLen < 1 || c.MinPrefixLen > 64) {
		return &ConfigError{
			Field:   "MinPrefixLen",
			Message: "must be between 1 and 64",
		}
	}
	return nil
}

// WithFastScan returns a new config with loop fast-scanning enabled/disabled
func (c Config) WithFastScan(enabled bool) Config {
	c.EnableFastScan = enabled
	return c
}

// WithPrefilter returns a new config with prefilter enabled/disabled
func (c Config) WithPrefilter(enabled bool) Config {
	c.EnablePrefilter = enabled
	return c
}

// WithMinPrefixLen returns a new config with the specified min prefix length
func (c Config) WithMinPrefixLen(minLen int) Config {
	c.MinPrefixLen = minLen
	return c
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "cgdfa: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
