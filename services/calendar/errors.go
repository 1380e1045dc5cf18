package calendar

import (
	"fmt"

	"slotify/models"
)

// Rejection codes returned by the calendar service. Every rejection carries
// a machine-checkable code plus a human-readable message.
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeImpact     = "IMPACT"
	CodeForbidden  = "FORBIDDEN"
	CodeInternal   = "INTERNAL"
)

// Error is a typed rejection from the calendar service.
type Error struct {
	Code      string                   `json:"code"`
	Message   string                   `json:"message"`
	Conflicts []models.Conflict        `json:"conflicts,omitempty"`
	Affected  []models.AffectedBooking `json:"affected_bookings,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a malformed or inconsistent input.
func NewValidationError(format string, args ...any) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an absent or not-owned entity.
func NewNotFoundError(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError reports overlaps with existing rules or bookings.
func NewConflictError(conflicts []models.Conflict) error {
	return &Error{
		Code:      CodeConflict,
		Message:   fmt.Sprintf("availability overlaps %d existing entries", len(conflicts)),
		Conflicts: conflicts,
	}
}

// NewImpactError reports that the edit would orphan existing bookings.
func NewImpactError(affected []models.AffectedBooking) error {
	return &Error{
		Code:     CodeImpact,
		Message:  fmt.Sprintf("change would affect %d existing booking(s)", len(affected)),
		Affected: affected,
	}
}

// NewInternalError wraps a storage or infrastructure failure.
func NewInternalError(err error) error {
	return &Error{Code: CodeInternal, Message: err.Error()}
}
