package main

import "fmt"

// ConfigError collects every configuration problem found during
// validation (via go.uber.org/multierr), not just the first. main prints
// the usage string only for this error kind.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
