package envsecret

import (
	"errors"
	"fmt"
)

// Error codes for resolution and coercion failures.
const (
	ErrCodeRequired      = "required"
	ErrCodeInvalidNumber = "invalid_number"
	ErrCodeInvalidJSON   = "invalid_json"
	ErrCodeInvalidParam  = "invalid_param"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrRequiredValueMissing is returned when a required parameter has
	// neither a value nor a default.
	ErrRequiredValueMissing = errors.New("envsecret: required value missing")

	// ErrInvalidNumericValue is returned when a raw value has no valid
	// numeric prefix.
	ErrInvalidNumericValue = errors.New("envsecret: invalid numeric value")

	// ErrInvalidJSON is returned when a raw value fails to decode as a
	// structured object (JSON, YAML, or TOML).
	ErrInvalidJSON = errors.New("envsecret: invalid structured value")

	// ErrInvalidParam is returned for a malformed Param (e.g. empty name).
	ErrInvalidParam = errors.New("envsecret: invalid parameter")
)

// ParamError describes a failure to resolve or coerce one parameter.
// Filesystem errors from file indirection are never wrapped in a
// ParamError.
type ParamError struct {
	Name    string // Parameter name (e.g., "DB_PASSWORD__FILE")
	Code    string // Error code (e.g., "required", "invalid_number")
	Value   string // Offending raw value, when relevant
	Message string // Human-readable description

	kind  error // one of the sentinel errors
	cause error // underlying parser error, if any
}

// Error returns the message prefixed with the package name.
func (e *ParamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("envsecret: %s: %v", e.Message, e.cause)
	}
	return "envsecret: " + e.Message
}

// Unwrap exposes the sentinel error and the underlying cause.
func (e *ParamError) Unwrap() []error {
	errs := []error{e.kind}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func newRequiredError(name string) *ParamError {
	return &ParamError{
		Name:    name,
		Code:    ErrCodeRequired,
		Message: fmt.Sprintf("secret %s is required, but was not found", name),
		kind:    ErrRequiredValueMissing,
	}
}

// newNumericError builds the error for a value of the given kind
// ("integer", "float", "duration") that could not be parsed.
func newNumericError(name, kind, value string) *ParamError {
	return &ParamError{
		Name:    name,
		Code:    ErrCodeInvalidNumber,
		Value:   value,
		Message: fmt.Sprintf("invalid %s value for secret %s: \"%s\"", kind, name, value),
		kind:    ErrInvalidNumericValue,
	}
}

func newDecodeError(name, format string, cause error) *ParamError {
	return &ParamError{
		Name:    name,
		Code:    ErrCodeInvalidJSON,
		Message: fmt.Sprintf("failed to parse %s from secret %s", format, name),
		kind:    ErrInvalidJSON,
		cause:   cause,
	}
}

func newInvalidParamError(name, reason string) *ParamError {
	return &ParamError{
		Name:    name,
		Code:    ErrCodeInvalidParam,
		Message: fmt.Sprintf("invalid parameter %q: %s", name, reason),
		kind:    ErrInvalidParam,
	}
}
