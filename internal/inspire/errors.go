package inspire

import (
	"errors"
	"fmt"
)

// Common errors returned by the INSPIRE client.
var (
	// ErrEmptyResponse indicates the service returned no text (timeout,
	// transport failure, or an empty body).
	ErrEmptyResponse = errors.New("empty response from INSPIRE")

	// ErrParse indicates the response body was not valid JSON.
	ErrParse = errors.New("unparseable response from INSPIRE")

	// ErrNotFound indicates the record was not found.
	ErrNotFound = errors.New("not found in INSPIRE")
)

// APIError is an error the service itself reported inside a valid JSON
// response (a status/message pair).
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("INSPIRE API error (status %s): %s", e.Status, e.Message)
}

// IsEmptyResponse reports whether err means the service could not be
// reached at all. Callers must treat this as "could not fetch", not as
// "zero matches".
func IsEmptyResponse(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}

// IsParseError reports whether err means the service answered with a body
// that was not valid JSON.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsAPIError reports whether the service reported an error in-band.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
