package team

import "fmt"

// ValidationError reports a missing or malformed request field.
// It is returned before any side effect takes place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an identifier that does not resolve to an entity
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// GatewayError wraps a failure from the completion gateway. The task
// carrying the failure, if one was created, travels alongside the error
// so callers can inspect partial state.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("completion gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// RoutingError reports a malformed or invalid routing decision.
// Raw holds the unparsed model output for diagnosis.
type RoutingError struct {
	Msg string
	Raw string
}

func (e *RoutingError) Error() string {
	return e.Msg
}
