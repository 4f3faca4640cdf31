package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	paramq "github.com/SimonDaKappa/go-paramq"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Input rejected by the schema
	ExitCommandError = 2 // Command error (unreadable files, broken schema, bad flags)
)

// Error codes reported in CLI responses.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeReadFailed    = "E002" // Input or schema file unreadable
	ErrCodeInvalidSchema = "E003" // Schema does not decode or validate
	ErrCodeInvalidInput  = "E004" // Input source is malformed
	ErrCodeValidation    = "E005" // A parameter failed validation
	ErrCodeConfiguration = "E006" // Schema or flags misuse the library
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs YAML output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard response envelope for CLI output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message, field string) error {
	return f.encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message, Field: field},
	})
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	if f.Format == "yaml" {
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// fail reports err through the formatter and maps it to an exit error.
// Rejected input exits with ExitFailure, everything else with
// ExitCommandError.
func (f *OutputFormatter) fail(code, message string, err error) error {
	var ve *paramq.ValidationError
	var ce *paramq.ConfigurationError
	switch {
	case errors.As(err, &ve):
		_ = f.Error(ErrCodeValidation, ve.Error(), ve.Field)
		return WrapExitError(ExitFailure, "validation failed", err)
	case errors.As(err, &ce):
		_ = f.Error(ErrCodeConfiguration, ce.Error(), ce.Field)
		return WrapExitError(ExitCommandError, message, err)
	case err != nil:
		_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), "")
		return WrapExitError(ExitCommandError, message, err)
	default:
		_ = f.Error(code, message, "")
		return NewExitError(ExitCommandError, message)
	}
}
