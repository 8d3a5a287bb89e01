package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/config"
)

// Exit codes following Unix conventions.
const (
	ExitSuccess        = 0  // Command completed successfully
	ExitGeneralError   = 1  // General errors
	ExitUsageError     = 2  // Invalid arguments/usage
	ExitConfigError    = 3  // Configuration file or environment issues
	ExitNotFoundError  = 5  // Product or index not found
	ExitNetworkError   = 11 // Catalog could not be fetched
	ExitInterruptError = 14 // User Ctrl+C interrupt
)

// ExitError provides specific exit codes for different failure modes.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// Code extracts the exit code for err. Errors that are not ExitErrors map to
// the general error code.
func Code(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}

// classify wraps errors from the core packages in an ExitError.
func classify(message string, err error) error {
	var exitErr *ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, context.Canceled):
		return NewExitError(ExitInterruptError, "interrupted", nil)
	case errors.Is(err, config.ErrInvalid):
		return NewExitError(ExitConfigError, message, err)
	case errors.Is(err, catalog.ErrLoadFailed):
		return NewExitError(ExitNetworkError, message, err)
	default:
		return NewExitError(ExitGeneralError, message, err)
	}
}
