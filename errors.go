package schemaid

import (
	"errors"
	"fmt"
)

// Sentinel errors for identity hashing failures.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrConfigConflict indicates a type-level schema mode override is set
	// while validation mode tracking is enabled. The override pins the
	// provider to a single mode, so the validation-mode document the
	// tracking flag needs can never be generated.
	ErrConfigConflict = errors.New("schema mode override conflicts with validation mode tracking")

	// ErrSerialization indicates the hash input envelope could not be
	// encoded, usually because tracked extra data is not JSON-serializable.
	ErrSerialization = errors.New("hash input not serializable")

	// ErrNilType indicates a nil value or nil reflect.Type was provided
	// where a concrete type was required.
	ErrNilType = errors.New("nil type")
)

// Error kinds categorize errors by their type.
const (
	// KindConfiguration represents programmer-configuration errors caught
	// before any schema generation or hashing work.
	KindConfiguration = "configuration"

	// KindSerialization represents envelope encoding failures.
	KindSerialization = "serialization"
)

// IdentityError is a structured error type that wraps underlying errors
// with the operation that failed, the error category, and the qualified
// name of the type whose hash was being computed.
//
// IdentityError implements the error interface and supports error
// unwrapping, making it compatible with errors.Is() and errors.As().
type IdentityError struct {
	// Op is the operation that failed (e.g., "Registry.GetOrCreate").
	Op string

	// Kind categorizes the error (KindConfiguration, KindSerialization).
	Kind string

	// Fullname is the qualified name of the type being hashed, when known.
	Fullname string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, type name, and underlying error.
func (e *IdentityError) Error() string {
	if e.Fullname != "" {
		return fmt.Sprintf("schemaid: %s (%s) %s: %v", e.Op, e.Kind, e.Fullname, e.Err)
	}
	return fmt.Sprintf("schemaid: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *IdentityError) Unwrap() error {
	return e.Err
}

// Is implements error matching for IdentityError, matching either another
// IdentityError with the same kind or the underlying error chain.
func (e *IdentityError) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*IdentityError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// NewConfigurationError creates a new IdentityError with KindConfiguration.
func NewConfigurationError(op, fullname string, err error) *IdentityError {
	return &IdentityError{
		Op:       op,
		Kind:     KindConfiguration,
		Fullname: fullname,
		Err:      err,
	}
}

// NewSerializationError creates a new IdentityError with KindSerialization.
func NewSerializationError(op, fullname string, err error) *IdentityError {
	return &IdentityError{
		Op:       op,
		Kind:     KindSerialization,
		Fullname: fullname,
		Err:      err,
	}
}
