package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// EmptyUpdateError is returned when a partial update carries no fields.
type EmptyUpdateError struct{}

func (e *EmptyUpdateError) Error() string { return "No data" }

// InvalidRangeError is returned when both ends of a min/max filter pair are
// present and the lower bound exceeds the upper bound.
type InvalidRangeError struct {
	Min, Max string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("Invalid min/max values: %s must not be greater than %s", e.Min, e.Max)
}

// InvalidNumericValueError is returned when a numeric filter does not parse.
type InvalidNumericValueError struct {
	Key   string
	Value string
}

func (e *InvalidNumericValueError) Error() string {
	return fmt.Sprintf("Invalid numeric value for %s: %q", e.Key, e.Value)
}

// InvalidTypeError is returned when a string filter is not a single scalar value.
type InvalidTypeError struct {
	Key string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("Invalid string value for %s", e.Key)
}

// InvalidBooleanError is returned when a flag filter is not true or false.
type InvalidBooleanError struct {
	Key   string
	Value string
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("Invalid boolean value for %s: %q (expected true or false)", e.Key, e.Value)
}

// NotFoundForFilterError is returned when a search with filters matched no rows.
type NotFoundForFilterError struct {
	Entity string
}

func (e *NotFoundForFilterError) Error() string {
	return fmt.Sprintf("No %s found matching the search criteria.", e.Entity)
}

// NotFoundForIdentifierError is returned when a primary key or handle does not exist.
type NotFoundForIdentifierError struct {
	Entity string
	ID     any
}

func (e *NotFoundForIdentifierError) Error() string {
	return fmt.Sprintf("No %s: %v", e.Entity, e.ID)
}

// DuplicateError is returned when a unique key is already taken.
type DuplicateError struct {
	Entity string
	ID     any
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Duplicate %s: %v", e.Entity, e.ID)
}

// UnauthorizedError is returned for missing or invalid credentials.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "Unauthorized"
	}
	return e.Reason
}

// IsNotFound reports whether err is either of the not-found kinds.
func IsNotFound(err error) bool {
	var byFilter *NotFoundForFilterError
	var byID *NotFoundForIdentifierError
	return errors.As(err, &byFilter) || errors.As(err, &byID)
}

// IsValidation reports whether err was raised by request validation.
func IsValidation(err error) bool {
	var (
		empty   *EmptyUpdateError
		rng     *InvalidRangeError
		numeric *InvalidNumericValueError
		typ     *InvalidTypeError
		boolean *InvalidBooleanError
	)
	return errors.As(err, &empty) ||
		errors.As(err, &rng) ||
		errors.As(err, &numeric) ||
		errors.As(err, &typ) ||
		errors.As(err, &boolean)
}

// StatusCode maps an error to the HTTP status the API answers with.
// Errors outside this package are internal errors.
func StatusCode(err error) int {
	var (
		dup    *DuplicateError
		unauth *UnauthorizedError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err), errors.As(err, &dup):
		return http.StatusBadRequest
	case errors.As(err, &unauth):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
