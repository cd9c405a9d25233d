package engine

import "fmt"

// ConfigError indicates invalid engine configuration, such as an
// inclusion or ordering regex that does not compile.
type ConfigError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
