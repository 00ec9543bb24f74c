package model

import "fmt"

// ConfigurationError signals a misconfiguration detected before a run enters
// the RUNNING state: conflicting operational approaches, incomplete
// Confidence-First parameters, missing baseline data, or an infeasible
// verification configuration. No samples execute once this is returned.
type ConfigurationError struct {
	Reason string
	Detail string
	cause  error
}

// NewConfigurationError builds a ConfigurationError with no detail.
func NewConfigurationError(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason}
}

// NewConfigurationErrorf builds a ConfigurationError with a formatted detail.
func NewConfigurationErrorf(reason, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *ConfigurationError) Unwrap() error { return e.cause }

// WrapConfigurationError wraps a lower-level cause (typically an
// InvalidArgument from the stats primitives) as a ConfigurationError at the
// driver/resolver boundary, per the propagation policy in spec.md §7.
func WrapConfigurationError(reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Detail: cause.Error(), cause: cause}
}

// InvalidArgument signals an invariant violation in a statistics primitive:
// a non-positive sample count, a success count outside [0, n], or a
// confidence outside (0, 1). Never recovered from within stats itself; it
// bubbles to a ConfigurationError at the caller boundary.
type InvalidArgument struct {
	Message string
}

// NewInvalidArgument builds an InvalidArgument with a formatted message.
func NewInvalidArgument(format string, args ...any) *InvalidArgument {
	return &InvalidArgument{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidArgument) Error() string { return e.Message }
