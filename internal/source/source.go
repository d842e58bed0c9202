package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/todoview/internal/model"
)

// fallbackMessage is used when a transport failure carries no message.
const fallbackMessage = "An error occurred"

// Failure is the closed set of errors a fetch can end with. Only the
// types in this package implement it.
type Failure interface {
	error
	// Outcome returns the journal outcome constant for the failure.
	Outcome() string
	failure()
}

// TransportError indicates the request could not complete at all
// (network, DNS, refused connection, ...).
type TransportError struct {
	Message string
	Cause   error
}

// NewTransportError builds a TransportError from the underlying cause,
// falling back to a generic message when the cause has none.
func NewTransportError(cause error) *TransportError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if msg == "" {
		msg = fallbackMessage
	}
	return &TransportError{Message: msg, Cause: cause}
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Cause }

// Outcome implements Failure.
func (e *TransportError) Outcome() string { return model.OutcomeTransportError }

func (*TransportError) failure() {}

// StatusError indicates the server answered with a status outside 2xx.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.StatusText)
}

// Outcome implements Failure.
func (e *StatusError) Outcome() string { return model.OutcomeStatusError }

func (*StatusError) failure() {}

// DecodeError indicates a 2xx response whose body was not a JSON array
// of todo items.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string { return e.Message }

func (e *DecodeError) Unwrap() error { return e.Cause }

// Outcome implements Failure.
func (e *DecodeError) Outcome() string { return model.OutcomeDecodeError }

func (*DecodeError) failure() {}

// IsTransportError reports whether err (or any error in its chain) is a
// TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsStatusError reports whether err (or any error in its chain) is a
// StatusError.
func IsStatusError(err error) bool {
	var target *StatusError
	return errors.As(err, &target)
}

// IsDecodeError reports whether err (or any error in its chain) is a
// DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// AsFailure converts any error into a Failure. Errors that already carry
// a Failure in their chain are returned as that Failure; anything else
// is treated as a transport failure.
func AsFailure(err error) Failure {
	if err == nil {
		return nil
	}

	var f Failure
	if errors.As(err, &f) {
		return f
	}
	return NewTransportError(err)
}

// SourceType identifies the kind of remote todo source.
type SourceType string

const (
	SourceTypePlaceholder SourceType = "jsonplaceholder"
)

// Source defines the contract a remote todo source implements.
type Source interface {
	// Type returns the source type identifier.
	Type() SourceType

	// Endpoint returns the URL the source reads from.
	Endpoint() string

	// FetchTodos performs exactly one request and returns the decoded
	// items. Failures are returned as one of this package's Failure types.
	FetchTodos(ctx context.Context) ([]model.TodoItem, error)
}
