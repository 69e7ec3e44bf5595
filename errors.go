package announce

import (
	"errors"
	"fmt"
)

// Declaration errors. Returned from Register when an event or one of its
// parameter signatures is malformed. Use errors.Is() to check for these
// errors as they are wrapped with additional context.
var (
	// ErrInvalidSignature indicates a malformed parameter signature:
	// an empty name or a type tag outside the closed set.
	ErrInvalidSignature = errors.New("invalid parameter signature")

	// ErrInvalidParameterOrder indicates a required parameter declared
	// after an optional one. Once a parameter is optional, every
	// parameter after it must be optional too.
	ErrInvalidParameterOrder = errors.New("required parameter follows optional parameter")

	// ErrDuplicateParameter indicates two parameters sharing a name.
	ErrDuplicateParameter = errors.New("duplicate parameter name")

	// ErrInvalidEvent indicates a malformed event declaration,
	// such as an empty event name.
	ErrInvalidEvent = errors.New("invalid event declaration")
)

// Usage errors. Returned from registry operations when the caller violates
// the API contract. The registry state is unchanged when these are returned.
var (
	// ErrMissingEventName indicates an operation called with an empty name.
	ErrMissingEventName = errors.New("missing event name")

	// ErrNotRegistered indicates the named event does not exist.
	ErrNotRegistered = errors.New("event not registered")

	// ErrAlreadyRegistered indicates the name is already taken.
	ErrAlreadyRegistered = errors.New("event already registered")

	// ErrMissingHandler indicates Subscribe or Unsubscribe was called
	// with a nil or non-function handler.
	ErrMissingHandler = errors.New("missing handler")

	// ErrArityMismatch indicates a fixed-arity handler that takes fewer
	// arguments than the event declares required parameters.
	ErrArityMismatch = errors.New("handler arity smaller than required parameter count")

	// ErrArgumentMismatch indicates a published argument whose runtime
	// category does not match the declared signature.
	ErrArgumentMismatch = errors.New("argument does not match declared signature")
)

// ArgumentError reports a single argument that failed validation against an
// event's declared signature, or that could not be passed to a handler.
// It wraps ErrArgumentMismatch.
type ArgumentError struct {
	Event    string
	Param    string
	Position int
	Want     string
	Got      string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("event %q: argument %d (%s): want %s, got %s",
		e.Event, e.Position, e.Param, e.Want, e.Got)
}

func (e *ArgumentError) Unwrap() error {
	return ErrArgumentMismatch
}

// IsArgumentMismatch checks if an error indicates a failed argument check.
func IsArgumentMismatch(err error) bool {
	return errors.Is(err, ErrArgumentMismatch)
}

// HandlerPanicError indicates a handler panicked during dispatch.
// Only returned from Publish when recovery is enabled; with recovery
// disabled the panic propagates to the caller.
type HandlerPanicError struct {
	Event string
	Value any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("event %q: handler panic: %v", e.Event, e.Value)
}

// IsHandlerPanic checks if an error indicates a recovered handler panic.
func IsHandlerPanic(err error) bool {
	var panicErr *HandlerPanicError
	return errors.As(err, &panicErr)
}
