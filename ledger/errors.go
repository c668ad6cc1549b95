/*
errors.go - Centralized error types for the record book

PURPOSE:
  All domain error types in one place. Callers classify with errors.Is /
  errors.As or the helpers at the bottom; the HTTP layer maps them onto
  status codes.

ERROR CATEGORIES:
  1. Validation errors - bad operator input, no state change
  2. Format errors     - malformed import documents, no merge performed
  3. Gate errors       - operations that need an explicit operator override

Missing-id conditions (delete or reclassify an absent transaction) are
deliberately NOT errors: the UI only offers those actions on rows it is
already showing, so they are silent no-ops.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoShift is returned by EndShift when no shift information has
	// been saved yet.
	ErrNoShift = errors.New("no shift information saved")

	// ErrEmptyShift is returned by EndShift when the ledger is empty and
	// the caller did not force the close. The operator may override.
	ErrEmptyShift = errors.New("no transactions recorded for this shift")

	// ErrInvalidFormat is the sentinel behind FormatError.
	ErrInvalidFormat = errors.New("invalid document format")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports bad or missing operator input. The triggering
// mutation is never applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FormatError reports a structurally invalid import document.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether err is operator-input related.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsFormat reports whether err came from a malformed import document.
func IsFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}
