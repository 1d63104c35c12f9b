package services

import (
	"errors"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
)

// Validation errors. Anything else returned by a service is an internal failure.
var (
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidYear        = errors.New("year must be between 1 and 9999")
	ErrMissingFields      = errors.New("nickname, date, start_time and end_time are required")
	ErrInvalidInterval    = errors.New("end_time must be after start_time")
	ErrInvalidParticipant = availability.ErrInvalidParticipant
	ErrEmptyChanges       = availability.ErrEmptyChanges
)

// IsValidationError reports whether err was caused by bad caller input
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidParticipant) ||
		errors.Is(err, ErrEmptyChanges)
}

// ValidationError wraps a parse failure of a caller supplied field
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
