package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every setup-time configuration error.
var ErrInvalidConfig = errors.New("scene: invalid configuration")

// ConfigError names the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scene: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

func partField(i int) string {
	return fmt.Sprintf("parts[%d]", i)
}
