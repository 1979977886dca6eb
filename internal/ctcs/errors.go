package ctcs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches every *ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrInstability matches every *InstabilityError.
	ErrInstability = errors.New("numerical instability")
)

// ConfigError rejects a simulator setup. It unwraps to the underlying cause,
// e.g. boundary.ErrUnsupported for sponge edges.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ctcs: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// InstabilityError reports a diverging state detected after a completed
// sub-step. The simulator does not retry; the caller has to reduce dt.
type InstabilityError struct {
	Time    float32
	SubStep uint64
	Err     error
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("ctcs: unstable after sub-step %d (t=%gs): %v", e.SubStep, e.Time, e.Err)
}

func (e *InstabilityError) Unwrap() error { return e.Err }

func (e *InstabilityError) Is(target error) bool { return target == ErrInstability }
