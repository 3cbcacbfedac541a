package submission

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when a 2xx response body is not JSON.
var ErrInvalidResponse = errors.New("invalid response body")

// StatusError reports a non-2xx answer from the backend. Body holds the
// response text for diagnostics only.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Erro %d: %s", e.StatusCode, e.Status)
}
