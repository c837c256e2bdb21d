package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// ServerError is a non-2xx answer from the backend. Its message is the
// server-provided detail when there is one, otherwise the HTTP status line.
type ServerError struct {
	StatusCode int
	StatusText string
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Error: %d %s", e.StatusCode, e.StatusText)
}
