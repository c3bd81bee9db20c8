package sim

import (
	"errors"
	"fmt"
)

// Error taxonomy. All of these indicate programmer or configuration error;
// none are transient and none should be retried.
var (
	// ErrInvalidArgument marks a numeric primitive called outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfig marks a configuration rejected at construction time.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidState marks a state-machine precondition violation.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnknownVariant marks an unrecognized demand model type or policy name.
	ErrUnknownVariant = errors.New("unknown variant")
)

// ArgumentError reports a function argument outside its valid domain.
type ArgumentError struct {
	Func  string
	Value float64
	Want  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s(%v): argument must be %s", e.Func, e.Value, e.Want)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

// ConfigError reports a single invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StateError reports an inventory state that does not match the configured shape.
type StateError struct {
	Day    int
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state at day %d: %s", e.Day, e.Reason)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// VariantError reports an unrecognized variant name, e.g. kind "policy.name".
type VariantError struct {
	Kind  string
	Value string
	Valid []string
}

func (e *VariantError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown %s: %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("unknown %s: %q; valid: %v", e.Kind, e.Value, e.Valid)
}

func (e *VariantError) Unwrap() error { return ErrUnknownVariant }
