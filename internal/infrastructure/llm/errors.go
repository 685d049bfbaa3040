package llm

import (
	"errors"
	"fmt"
)

// ConfigError means the call was not attempted because the client lacks a credential.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "generation misconfigured: " + e.Reason
}

// TransportError wraps a network-level failure; the request may not have reached the service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success HTTP response from the generation service.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service returned HTTP %d: %s", e.StatusCode, e.Body)
}

// EmptyResponseError is a successful response that carries no usable text.
type EmptyResponseError struct {
	Reason string
}

func (e *EmptyResponseError) Error() string {
	if e.Reason == "" {
		return "generation service returned no content"
	}
	return "generation service returned no content: " + e.Reason
}

// Is lets errors.Is(err, ErrEmptyResponse) match any EmptyResponseError.
func (e *EmptyResponseError) Is(target error) bool {
	_, ok := target.(*EmptyResponseError)
	return ok
}

// ErrEmptyResponse is the sentinel for errors.Is checks.
var ErrEmptyResponse = &EmptyResponseError{}

// IsConfigError reports whether err stems from missing configuration.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
