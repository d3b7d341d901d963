package partition

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrMissingKey indicates a required key is absent from a JSON mapping.
	ErrMissingKey = errors.New("missing required key")

	// ErrUnexpectedVersion indicates a serialized value carries a version
	// this code cannot deserialize.
	ErrUnexpectedVersion = errors.New("unexpected version")

	// ErrUnrecognizedScheme indicates no extension is registered under the
	// requested scheme name.
	ErrUnrecognizedScheme = errors.New("unrecognized scheme")

	// ErrInvalidID indicates an identifier that cannot be coerced to an
	// integer.
	ErrInvalidID = errors.New("invalid ID")

	// ErrMalformedValue indicates a JSON value of the wrong shape or type.
	ErrMalformedValue = errors.New("malformed value")

	// ErrSchemeExists indicates a duplicate registration for a scheme name.
	ErrSchemeExists = errors.New("scheme already registered")

	// ErrPartitionNotFound is returned by repositories when no partition
	// matches the requested id.
	ErrPartitionNotFound = errors.New("partition not found")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "partition", "scheme"
	Op      string // Operation that failed, e.g., "FromJSON", "Get"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsValidation checks if the error is a validation/deserialization error.
// Every failure mode of the model itself falls under this single kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingKey) ||
		errors.Is(err, ErrUnexpectedVersion) ||
		errors.Is(err, ErrUnrecognizedScheme) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrMalformedValue)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPartitionNotFound)
}
