package spacex

import (
	"fmt"
)

// StatusError is returned when the upstream API answers with a non-2xx
// status. Unknown ids surface this way too; there is no local not-found.
type StatusError struct {
	Url        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spacex API returned status %d for %s", e.StatusCode, e.Url)
}

// ShapeError is returned when an upstream response decodes but is missing
// fields the DTO cannot do without.
type ShapeError struct {
	Resource string
	Wrapped  error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s shape from spacex API: %v", e.Resource, e.Wrapped)
}

func (e *ShapeError) Unwrap() error {
	return e.Wrapped
}
