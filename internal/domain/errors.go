package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStoreUnavailable marks a search that failed because one of the record
// stores could not be queried. The whole search fails rather than returning
// a silently incomplete result set.
var ErrStoreUnavailable = errors.New("search store unavailable")

// ValidationError reports a malformed search request. Field names the
// offending request field; Allowed, when set, lists the accepted values.
type ValidationError struct {
	Field   string
	Message string
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s (allowed: %s)", e.Field, e.Message, strings.Join(e.Allowed, "|"))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string, allowed ...string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Allowed: allowed}
}

// ErrInvalidField constructs a ValidationError for an enum field whose value
// is not in the accepted set.
func ErrInvalidField(field string, allowed ...string) *ValidationError {
	return newValidationError(field, "must be one of: "+strings.Join(allowed, ", "), allowed...)
}

// ErrQueryTooLong constructs the ValidationError for over-length queries.
func ErrQueryTooLong() *ValidationError {
	return newValidationError("query", fmt.Sprintf("cannot exceed %d characters", MaxQueryLength))
}
