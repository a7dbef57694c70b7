// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeConfig indicates the pricing catalog or application
	// configuration is structurally invalid (fatal at load time)
	TypeConfig Type = "CONFIG_ERROR"

	// TypeUnknownService indicates the requested service key is not
	// present in the catalog
	TypeUnknownService Type = "UNKNOWN_SERVICE"

	// TypeNoTier indicates the sample count falls outside every
	// defined pricing tier
	TypeNoTier Type = "NO_TIER_FOR_SAMPLE_COUNT"

	// TypeValidation indicates the request payload failed
	// structural, type, or enumeration checks
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeLegal indicates the legal terms were not accepted; a
	// business-rule rejection, not malformed input
	TypeLegal Type = "LEGAL_NOT_ACCEPTED"

	// TypeDelivery indicates confirmation delivery failed
	TypeDelivery Type = "DELIVERY_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// FieldError describes a single field-level validation violation
type FieldError struct {
	// Path is the field path in the payload (e.g. "billingEmail",
	// "deliverables[2]")
	Path string `json:"path"`

	// Reason explains why the field is invalid
	Reason string `json:"reason"`
}

// Error implements the error interface
func (f FieldError) Error() string {
	return f.Path + ": " + f.Reason
}

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Fields  []FieldError           `json:"fields,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Error()
		}
		fmt.Fprintf(&b, ": %s", strings.Join(parts, "; "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the domain type of an error, or TypeInternal for
// errors that did not originate in this package
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// FieldsOf returns the field violations carried by a validation error
func FieldsOf(err error) []FieldError {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// UnknownService creates an unknown service error
func UnknownService(serviceKey string) *Error {
	return Newf(TypeUnknownService, "unknown service: %s", serviceKey).
		WithContext("serviceKey", serviceKey)
}

// NoTier creates a no-tier error for a sample count
func NoTier(serviceKey string, samples int) *Error {
	return Newf(TypeNoTier, "no price tier for %d samples in service %s", samples, serviceKey).
		WithContext("serviceKey", serviceKey).
		WithContext("samples", samples)
}

// Validation creates a validation error carrying field violations
func Validation(fields []FieldError) *Error {
	e := New(TypeValidation, "request payload is invalid")
	e.Fields = fields
	return e
}

// LegalNotAccepted creates a legal-terms rejection
func LegalNotAccepted() *Error {
	return New(TypeLegal, "legal terms must be accepted")
}

// Delivery creates a delivery error
func Delivery(message string, cause error) *Error {
	return Wrap(TypeDelivery, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
