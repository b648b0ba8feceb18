package markup

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrAutomationDisabled indicates automated emission was invoked on a
	// type that disables it and supplies no MarkupWriterTo routine.
	ErrAutomationDisabled = errors.New("automated serialization disabled")

	// ErrUnsupportedEncoding indicates a requested encoding is not one of
	// the supported Unicode transform formats.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrMalformedMarkup indicates the source markup could not be parsed.
	ErrMalformedMarkup = errors.New("malformed markup")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")
)

// ConfigError represents a per-type configuration error.
// It wraps a sentinel error with the name of the offending type.
type ConfigError struct {
	Err      error  // Underlying sentinel error (ErrAutomationDisabled, etc.)
	TypeName string // Type that triggered the error
}

func (e *ConfigError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("%s for type %s", e.Err.Error(), e.TypeName)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// EncodingError represents a rejected target encoding.
// It is surfaced before any output is written.
type EncodingError struct {
	Err       error  // Underlying sentinel error (ErrUnsupportedEncoding)
	Requested string // Encoding name as requested by the caller
}

func (e *EncodingError) Error() string {
	if e.Requested != "" {
		return fmt.Sprintf("%s: %q", e.Err.Error(), e.Requested)
	}
	return e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// StructuralError represents malformed source markup.
// The cause is propagated from the underlying markup parser.
type StructuralError struct {
	Err   error // Underlying sentinel error (ErrMalformedMarkup)
	Cause error // Original error from the parser
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError identifying the offending type.
func newConfigError(sentinel error, typeName string) error {
	return &ConfigError{
		Err:      sentinel,
		TypeName: typeName,
	}
}

// newEncodingError creates an EncodingError for a rejected encoding.
func newEncodingError(requested string) error {
	return &EncodingError{
		Err:       ErrUnsupportedEncoding,
		Requested: requested,
	}
}

// newStructuralError creates a StructuralError wrapping a parser failure.
func newStructuralError(cause error) error {
	return &StructuralError{
		Err:   ErrMalformedMarkup,
		Cause: cause,
	}
}
