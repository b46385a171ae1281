package config

import "strings"

// AuthConfigError reports Twitter credentials missing from the environment.
type AuthConfigError struct {
	Missing []string
}

func (e *AuthConfigError) Error() string {
	return "Twitter API credentials are not set: " + strings.Join(e.Missing, ", ")
}
