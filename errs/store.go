package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Record store error taxonomy. Every store operation fails with one of
// these rather than returning partial data.
var (
	ErrNotFound         = errors.New("not found")
	ErrMalformedStore   = errors.New("malformed projects document")
	ErrValidationFailed = errors.New("validation failed")
	ErrIOFailure        = errors.New("store I/O failure")
)

// NewNotFound reports a missing entity (document, record or image).
func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewMalformedStore reports a projects document that is not valid JSON
// or not an array. Malformed content is a hard failure: silently
// dropping records would be worse than refusing the operation.
func NewMalformedStore(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMalformedStore,
		Details:    "projects document is not a valid JSON array",
		Cause:      cause,
	}
}

// NewValidationFailed carries the full list of field violations.
func NewValidationFailed(violations []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidationFailed,
		Details:    strings.Join(violations, ", "),
		Field:      "project",
	}
}

// NewIOFailure reports a failed backup, read or write of the canonical
// document or an image asset.
func NewIOFailure(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrIOFailure,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMalformedStore(err error) bool {
	return errors.Is(err, ErrMalformedStore)
}

func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

func IsIOFailure(err error) bool {
	return errors.Is(err, ErrIOFailure)
}
