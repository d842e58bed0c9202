package source

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoview/internal/model"
)

func TestNewTransportErrorUsesCauseMessage(t *testing.T) {
	err := NewTransportError(errors.New("Network error"))

	assert.Equal(t, "Network error", err.Error())
	assert.Equal(t, model.OutcomeTransportError, err.Outcome())
}

func TestNewTransportErrorFallback(t *testing.T) {
	assert.Equal(t, "An error occurred", NewTransportError(nil).Error())
	assert.Equal(t, "An error occurred", NewTransportError(errors.New("")).Error())
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{StatusCode: 404, StatusText: "Not Found"}

	assert.Equal(t, "Error 404: Not Found", err.Error())
	assert.Equal(t, model.OutcomeStatusError, err.Outcome())
}

func TestIsHelpersSeeThroughWrapping(t *testing.T) {
	status := fmt.Errorf("fetching: %w", &StatusError{StatusCode: 500, StatusText: "Internal Server Error"})
	transport := fmt.Errorf("fetching: %w", NewTransportError(errors.New("dial tcp: refused")))
	decode := fmt.Errorf("fetching: %w", &DecodeError{Message: "decoding todos: EOF"})

	assert.True(t, IsStatusError(status))
	assert.False(t, IsTransportError(status))

	assert.True(t, IsTransportError(transport))
	assert.False(t, IsDecodeError(transport))

	assert.True(t, IsDecodeError(decode))
	assert.False(t, IsStatusError(decode))
}

func TestAsFailure(t *testing.T) {
	assert.Nil(t, AsFailure(nil))

	wrapped := fmt.Errorf("outer: %w", &StatusError{StatusCode: 503, StatusText: "Service Unavailable"})
	f := AsFailure(wrapped)
	require.NotNil(t, f)
	assert.Equal(t, "Error 503: Service Unavailable", f.Error())

	plain := AsFailure(errors.New("boom"))
	require.NotNil(t, plain)
	assert.True(t, IsTransportError(plain))
	assert.Equal(t, "boom", plain.Error())
}
