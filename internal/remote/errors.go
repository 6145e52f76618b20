package remote

import (
	"errors"
	"fmt"
)

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("remote API rate limit exceeded")

// ServerError represents a 5xx error from the remote endpoint
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("remote server error: HTTP %d", e.StatusCode)
}
