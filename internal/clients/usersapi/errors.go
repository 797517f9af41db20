package usersapi

import (
	"fmt"
)

// NetworkError means the users endpoint could not be reached or answered
// with a non-2xx status.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ShapeError means the users endpoint answered, but not with a JSON array
// of user objects.
type ShapeError struct {
	Payload string
	Err     error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response is not an array of users: %v: %q", e.Err, e.Payload)
	}
	return fmt.Sprintf("response is not an array of users: %q", e.Payload)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// apiError is the error body written by the users API
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
