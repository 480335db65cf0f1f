package errors

import (
	stdErrors "errors"
	"fmt"
)

// ConfigurationError represents invalid or missing configuration detected
// before any network or database call is made.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for the given config field.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// IsConfigurationError reports whether err is a ConfigurationError (even when wrapped).
func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return stdErrors.As(err, &configErr)
}
