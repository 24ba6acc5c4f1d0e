package provider

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a provider name could not be resolved.
// This is always a hard failure surfaced to the caller.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("provider not found: %s", e.Name)
}

// NotSupportedError indicates that a resolved provider lacks an optional
// capability. Dispatchers downgrade this to an informational response for
// read-only actions and surface it as a failure for mutating ones.
type NotSupportedError struct {
	Provider   string
	Capability string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s is not supported by provider %s", e.Capability, e.Provider)
}

// NotSupported creates a NotSupportedError for the given provider and capability.
func NotSupported(providerName, capability string) error {
	return &NotSupportedError{Provider: providerName, Capability: capability}
}

// IsNotSupported reports whether err is (or wraps) a NotSupportedError.
func IsNotSupported(err error) bool {
	var nse *NotSupportedError
	return errors.As(err, &nse)
}
