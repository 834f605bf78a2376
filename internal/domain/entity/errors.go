package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrType indicates that a field was given a value of the wrong type
	ErrType = errors.New("invalid type")

	// ErrValue indicates that a field value is outside its allowed range
	ErrValue = errors.New("invalid value")

	// ErrImmutableAttribute indicates an attempt to reassign a read-only field
	ErrImmutableAttribute = errors.New("immutable attribute")
)

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	// TypeKind is reported when a field has the wrong type or a required reference is missing.
	TypeKind ErrorKind = iota + 1
	// ValueKind is reported when a field has the right type but violates a range rule.
	ValueKind
)

// String returns the lower-case name of the kind, used as a metrics label.
func (k ErrorKind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case ValueKind:
		return "value"
	default:
		return "unknown"
	}
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
// errors.Is matches ErrType or ErrValue depending on Kind.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap maps the error kind onto its sentinel.
func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case TypeKind:
		return ErrType
	case ValueKind:
		return ErrValue
	default:
		return nil
	}
}

// ImmutableAttributeError is returned by setters of read-only fields.
type ImmutableAttributeError struct {
	Entity string
	Field  string
}

// Error returns a message such as "Author name is immutable".
func (e *ImmutableAttributeError) Error() string {
	return fmt.Sprintf("%s %s is immutable", e.Entity, e.Field)
}

// Unwrap allows errors.Is(err, ErrImmutableAttribute).
func (e *ImmutableAttributeError) Unwrap() error {
	return ErrImmutableAttribute
}
