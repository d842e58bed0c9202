package placeholder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source"
)

// roundTripFunc lets a test stand in for the network.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestGetTodosSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"userId":1,"id":1,"title":"delectus aut autem","completed":false}]`))
	}))
	defer srv.Close()

	todos, err := NewClient(srv.URL + "/todos").GetTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Todo{{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false}}, todos)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetTodosNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	todos, err := NewClient(srv.URL + "/todos").GetTodos(context.Background())
	require.Error(t, err)
	assert.Nil(t, todos)

	var statusErr *source.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.StatusCode)
	assert.Equal(t, "Not Found", statusErr.StatusText)
	assert.Equal(t, "Error 404: Not Found", err.Error())
	assert.EqualValues(t, 1, calls.Load(), "non-success status must not be retried")
}

func TestGetTodosServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTodos(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsStatusError(err))
	assert.Contains(t, err.Error(), "429")
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetTodosTransportFailure(t *testing.T) {
	hc := &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("Network error")
		}),
	}

	_, err := NewClient("", WithHTTPClient(hc)).GetTodos(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsTransportError(err))
	assert.Equal(t, "Network error", err.Error())
}

func TestGetTodosConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).GetTodos(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsTransportError(err))
	assert.NotEmpty(t, err.Error())
}

func TestGetTodosMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTodos(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsDecodeError(err))
	assert.Contains(t, err.Error(), "decoding todos")
}

func TestGetTodosTrailingGarbage(t *testing.T) {
	for name, body := range map[string]string{
		"text":         `[{"userId":1,"id":1,"title":"a","completed":false}] not json`,
		"second value": `[{"userId":1,"id":1,"title":"a","completed":false}] {}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			todos, err := NewClient(srv.URL).GetTodos(context.Background())
			require.Error(t, err)
			assert.Nil(t, todos)
			assert.True(t, source.IsDecodeError(err))
			assert.Contains(t, err.Error(), "decoding todos")
		})
	}
}

func TestGetTodosTrailingWhitespaceAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[{\"userId\":1,\"id\":1,\"title\":\"a\",\"completed\":false}]\n  "))
	}))
	defer srv.Close()

	todos, err := NewClient(srv.URL).GetTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
}

func TestGetTodosNullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	todos, err := NewClient(srv.URL).GetTodos(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	assert.Equal(t, model.DefaultTodosEndpoint, NewClient("").Endpoint())
}

func TestStatusTextFallback(t *testing.T) {
	resp := &http.Response{StatusCode: 418, Status: "418"}
	assert.Equal(t, "I'm a teapot", statusText(resp))

	resp = &http.Response{StatusCode: 404, Status: "404 Gone Fishing"}
	assert.Equal(t, "Gone Fishing", statusText(resp))
}
