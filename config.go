package shortest

import "github.com/coregx/shortest/program"

// Strategy selects the engine a Matcher runs.
type Strategy int

const (
	// UseAuto picks UseBacktracking for anchored programs, which have a
	// single candidate, and UseThreaded otherwise.
	UseAuto Strategy = iota

	// UseBacktracking runs one simulation per prefix candidate and returns
	// the first that completes.
	UseBacktracking

	// UseThreaded simulates all candidates in lockstep and returns the
	// earliest-starting match found first.
	UseThreaded
)

// String returns a human-readable representation of the Strategy
func (s Strategy) String() string {
	switch s {
	case UseAuto:
		return "UseAuto"
	case UseBacktracking:
		return "UseBacktracking"
	case UseThreaded:
		return "UseThreaded"
	default:
		return "Unknown"
	}
}

// ParseStrategy maps "auto", "backtracking" and "threaded" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "auto", "":
		return UseAuto, nil
	case "backtracking":
		return UseBacktracking, nil
	case "threaded":
		return UseThreaded, nil
	}
	return UseAuto, &ConfigError{Field: "Strategy", Message: "unknown strategy " + name}
}

// selectStrategy resolves UseAuto for prog.
func selectStrategy(prog *program.Program, s Strategy) Strategy {
	if s != UseAuto {
		return s
	}
	if prog.IsAnchored() {
		return UseBacktracking
	}
	return UseThreaded
}

// Config controls how a Matcher is built.
//
// Example:
//
//	config := shortest.DefaultConfig()
//	config.Strategy = shortest.UseThreaded
//	m, err := shortest.New(prog, lits, config)
type Config struct {
	// Strategy selects the engine.
	// Default: UseAuto
	Strategy Strategy

	// ValidateProgram checks the program tables before building the
	// engines. The engines index the tables without bounds checks of their
	// own, so a malformed program panics during matching when this is off.
	// Default: true
	ValidateProgram bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:        UseAuto,
		ValidateProgram: true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error describing the first invalid parameter found.
func (c Config) Validate() error {
	if c.Strategy < UseAuto || c.Strategy > UseThreaded {
		return &ConfigError{
			Field:   "Strategy",
			Message: "must be UseAuto, UseBacktracking or UseThreaded",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "shortest: invalid config: " + e.Field + ": " + e.Message
}
