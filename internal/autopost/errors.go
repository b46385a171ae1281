package autopost

import (
	"errors"
	"fmt"
)

// PublishError wraps any failure reported while submitting a post: network, auth,
// rate limit or content rejection alike.
type PublishError struct {
	Platform string
	Cause    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to %s: %v", e.Platform, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}

// IsPublishError reports whether err is or wraps a *PublishError.
func IsPublishError(err error) bool {
	var pubErr *PublishError
	return errors.As(err, &pubErr)
}
