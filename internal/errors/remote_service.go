package errors

import (
	stdErrors "errors"
	"fmt"
)

// RemoteServiceError represents a failed interaction with the Books API:
// a non-success HTTP status, an unreachable host or an undecodable body.
type RemoteServiceError struct {
	Message    string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// NewRemoteServiceError creates a RemoteServiceError for a non-success HTTP status.
func NewRemoteServiceError(statusCode int, message string) *RemoteServiceError {
	return &RemoteServiceError{Message: message, StatusCode: statusCode}
}

// WrapRemoteServiceError creates a RemoteServiceError around a transport or decode error.
func WrapRemoteServiceError(message string, err error) *RemoteServiceError {
	return &RemoteServiceError{Message: message, Err: err}
}

// IsRemoteServiceError reports whether err is a RemoteServiceError (even when wrapped).
func IsRemoteServiceError(err error) bool {
	var remoteErr *RemoteServiceError
	return stdErrors.As(err, &remoteErr)
}
