// Package shared provides domain building blocks used by every catalog entity:
// the typed domain error, the unit-of-work boundary, and the object storage port.
package shared

import "fmt"

// Kind classifies a domain error for upstream mapping (HTTP/gRPC status codes
// live in the delivery layer, not here).
type Kind int

// Error kinds.
const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindRelatedMissing
)

// Error is a domain error carrying a machine-readable code, a human message,
// and optional structured details (e.g. which field violated a constraint).
type Error struct {
	Code    string
	Message string
	Kind    Kind
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Details)
}

// Is matches two domain errors by code so sentinel declarations and
// detail-carrying instances compare equal under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy of the error with the given details attached.
// The original (usually a package-level sentinel) is left untouched.
func (e *Error) WithDetails(details map[string]string) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Validation creates a validation-kind domain error.
func Validation(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindValidation}
}

// NotFound creates a not-found-kind domain error.
func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindNotFound}
}

// Conflict creates a conflict-kind domain error (uniqueness violations).
func Conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindConflict}
}

// RelatedMissing creates a related-entity-missing domain error.
func RelatedMissing(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindRelatedMissing}
}
