package paramq

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Sentinel causes carried by ConfigurationError. Use errors.Is to test for them.
var (
	ErrMissingFieldName         = errors.New("field name is not provided")
	ErrInvalidItemType          = errors.New("invalid itemType")
	ErrMissingHandler           = errors.New("handler must be a function")
	ErrMissingPattern           = errors.New("pattern is not provided")
	ErrUnsupportedDialect       = errors.New("unsupported dialect")
	ErrUnknownOperator          = errors.New("unknown operator")
	ErrDuplicateKey             = errors.New("destination already holds this key")
	ErrMissingSortFields        = errors.New("allowed sort fields are not provided")
	ErrInvalidBound             = errors.New("invalid min/max bound")
	ErrInvalidFormat            = errors.New("invalid date format")
	ErrParserAlreadyRegistered  = errors.New("a parser for this kind is already registered")
	ErrParserNotFound           = errors.New("no parser registered for this kind")
	ErrInvalidSchema            = errors.New("invalid schema")
	ErrUnsupportedSchemaKind    = errors.New("kind cannot be declared in a schema")
	ErrSectionNotAMap           = errors.New("destination section is not a map")
	ErrInvalidSourceContentType = errors.New("unsupported source content type")
)

// ValidationError reports a raw value that failed conversion or validation.
// It is the default product of the ErrorFactory; hosts usually translate it
// into a user facing rejection such as an HTTP 422.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter: %s", ve.Reason)
}

// ConfigurationError reports a mistake in the calling code rather than in
// the input data: a missing field name, an unknown item type, a missing
// handler, an unsupported dialect.
type ConfigurationError struct {
	Field  string
	Err    error
	Detail string
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	msg := "configuration error: " + ce.Err.Error()
	if ce.Field != "" {
		msg += " (field " + ce.Field + ")"
	}
	if ce.Detail != "" {
		msg += ": " + ce.Detail
	}
	return msg
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

func configError(field string, cause error, format string, args ...any) error {
	ce := &ConfigurationError{Field: field, Err: cause}
	if format != "" {
		ce.Detail = fmt.Sprintf(format, args...)
	}
	return ce
}

// IsValidationError reports whether err, or anything it wraps, is a
// *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfigurationError reports whether err, or anything it wraps, is a
// *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

///////////////////////////////////////////////////////////////////////////////
// Error Factory
///////////////////////////////////////////////////////////////////////////////

// ErrorFactory builds the error returned for every validation failure.
// field is the name of the offending parameter and reason the complete human
// readable message, e.g. "login is required".
type ErrorFactory func(field, reason string) error

// NewValidationError is the default ErrorFactory.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
