package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source"
)

// Client is a thin HTTP client for the JSONPlaceholder todos resource.
// Each call issues exactly one GET; there is no retry and no client-side
// timeout, so the request waits on the transport or the caller's context.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new client for the given endpoint URL. An empty
// endpoint falls back to model.DefaultTodosEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = model.DefaultTodosEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetTodos performs the GET and decodes the JSON array body. The returned
// error is always one of source.TransportError, source.StatusError or
// source.DecodeError.
func (c *Client) GetTodos(ctx context.Context) ([]Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, source.NewTransportError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, source.NewTransportError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused; the body is not inspected.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.StatusError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	var todos []Todo
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&todos); err != nil {
		return nil, decodeError(err)
	}
	// The body must be exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after todo array")
		}
		return nil, decodeError(err)
	}
	if todos == nil {
		// A literal null body decodes without error; treat it as empty.
		todos = []Todo{}
	}

	return todos, nil
}

func decodeError(err error) *source.DecodeError {
	return &source.DecodeError{
		Message: fmt.Sprintf("decoding todos: %v", err),
		Cause:   err,
	}
}

// unwrapURLError strips the *url.Error wrapper net/http adds around
// transport failures so the message is the cause's own.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found"),
// falling back to the canonical text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(
		strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)),
	)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
