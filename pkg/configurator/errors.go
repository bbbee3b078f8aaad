package configurator

import (
	"errors"
	"fmt"
)

// IncompatibleFactoryError reports that the registered context
// capability cannot produce logger contexts. This is a wiring mistake
// made once at startup, so the resolver reports it once rather than on
// every operation.
type IncompatibleFactoryError struct {
	// Capability is the value that was registered, nil when nothing
	// was.
	Capability any
}

// Error implements the error interface.
func (e *IncompatibleFactoryError) Error() string {
	if e.Capability == nil {
		return "no context factory capability registered"
	}

	return fmt.Sprintf("incompatible context factory capability %T", e.Capability)
}

// Is checks if the target error is an IncompatibleFactoryError.
func (e *IncompatibleFactoryError) Is(target error) bool {
	_, ok := target.(*IncompatibleFactoryError)
	return ok
}

// NewIncompatibleFactoryError creates the error for a registered
// capability value, which may be nil.
func NewIncompatibleFactoryError(capability any) error {
	return &IncompatibleFactoryError{Capability: capability}
}

// IsIncompatibleFactory checks if an error is an IncompatibleFactoryError.
func IsIncompatibleFactory(err error) bool {
	var target *IncompatibleFactoryError
	return errors.As(err, &target)
}

// ContextCreationError reports that the factory failed while building
// or fetching a logger context.
type ContextCreationError struct {
	cause error
}

// Error implements the error interface.
func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("failed to obtain logger context: %v", e.cause)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *ContextCreationError) Unwrap() error {
	return e.cause
}

// Is checks if the target error is a ContextCreationError.
func (e *ContextCreationError) Is(target error) bool {
	_, ok := target.(*ContextCreationError)
	return ok
}

// NewContextCreationError wraps a factory failure.
func NewContextCreationError(cause error) error {
	return &ContextCreationError{cause: cause}
}

// IsContextCreation checks if an error is a ContextCreationError.
func IsContextCreation(err error) bool {
	var target *ContextCreationError
	return errors.As(err, &target)
}

// InvalidLocationError reports a configuration location string that
// could not be resolved to a canonical URI. Distinct from
// ContextCreationError: the factory was never consulted.
type InvalidLocationError struct {
	// Location is the raw string the caller supplied.
	Location string

	cause error
}

// Error implements the error interface.
func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid configuration location %q: %v", e.Location, e.cause)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *InvalidLocationError) Unwrap() error {
	return e.cause
}

// Is checks if the target error is an InvalidLocationError.
func (e *InvalidLocationError) Is(target error) bool {
	_, ok := target.(*InvalidLocationError)
	return ok
}

// NewInvalidLocationError creates the error for a raw location string.
func NewInvalidLocationError(location string, cause error) error {
	return &InvalidLocationError{Location: location, cause: cause}
}

// IsInvalidLocation checks if an error is an InvalidLocationError.
func IsInvalidLocation(err error) bool {
	var target *InvalidLocationError
	return errors.As(err, &target)
}
