package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source"
	"github.com/nhle/todoview/internal/source/placeholder"
)

var mockTodos = []model.TodoItem{
	{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false},
}

// stubSource answers FetchTodos from fn and counts calls. When gate is
// non-nil the call blocks until it is closed.
type stubSource struct {
	calls atomic.Int32
	gate  chan struct{}
	fn    func() ([]model.TodoItem, error)
}

func (s *stubSource) Type() source.SourceType { return "stub" }

func (s *stubSource) Endpoint() string { return model.DefaultTodosEndpoint }

func (s *stubSource) FetchTodos(ctx context.Context) ([]model.TodoItem, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.fn()
}

func waitDone(t *testing.T, a *Activation) {
	t.Helper()
	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("activation did not resolve")
	}
}

func TestActivateSuccess(t *testing.T) {
	src := &stubSource{
		gate: make(chan struct{}),
		fn:   func() ([]model.TodoItem, error) { return mockTodos, nil },
	}
	f := New(src)

	a := f.Activate(context.Background(), nil)

	initial := a.State()
	assert.True(t, initial.IsLoading)
	assert.Empty(t, initial.Items)
	assert.NotNil(t, initial.Items)
	assert.NoError(t, initial.Err)

	close(src.gate)
	waitDone(t, a)

	final := a.State()
	assert.False(t, final.IsLoading)
	assert.Equal(t, mockTodos, final.Items)
	assert.NoError(t, final.Err)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestActivateTransportFailure(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) { return nil, errors.New("Network error") },
	}

	a := New(src).Activate(context.Background(), nil)
	waitDone(t, a)

	st := a.State()
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Items)
	require.Error(t, st.Err)
	assert.Equal(t, "Network error", st.Err.Error())
	assert.True(t, source.IsTransportError(st.Err))
}

func TestActivateStatusFailure(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) {
			return nil, &source.StatusError{StatusCode: 404, StatusText: "Not Found"}
		},
	}

	a := New(src).Activate(context.Background(), nil)
	waitDone(t, a)

	st := a.State()
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Items)
	require.Error(t, st.Err)
	assert.Contains(t, st.Err.Error(), "404")
	assert.Equal(t, "Error 404: Not Found", st.Err.Error())
}

func TestActivateOnUpdateCalledOnce(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) { return mockTodos, nil },
	}

	var (
		mu      sync.Mutex
		updates []State
	)
	a := New(src).Activate(context.Background(), func(st State) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, st)
	})
	waitDone(t, a)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 1)
	assert.False(t, updates[0].IsLoading)
	assert.Equal(t, mockTodos, updates[0].Items)
}

func TestDeactivateBeforeResolveDropsUpdate(t *testing.T) {
	src := &stubSource{
		gate: make(chan struct{}),
		fn:   func() ([]model.TodoItem, error) { return mockTodos, nil },
	}

	called := atomic.Bool{}
	a := New(src).Activate(context.Background(), func(State) { called.Store(true) })

	a.Deactivate()
	a.Deactivate()
	assert.False(t, a.Active())

	close(src.gate)
	waitDone(t, a)

	assert.False(t, called.Load())
	assert.True(t, a.State().IsLoading, "a torn-down activation keeps its last state")
	_, _, ok := a.Result()
	assert.False(t, ok)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestActivationsAreIndependent(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) { return mockTodos, nil },
	}
	f := New(src)

	first := f.Activate(context.Background(), nil)
	waitDone(t, first)

	src.gate = make(chan struct{})
	second := f.Activate(context.Background(), nil)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.True(t, second.State().IsLoading)
	assert.Empty(t, second.State().Items)
	assert.NoError(t, second.State().Err)

	close(src.gate)
	waitDone(t, second)
	assert.Equal(t, mockTodos, second.State().Items)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestActivationResult(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) {
			return nil, &source.StatusError{StatusCode: 503, StatusText: "Service Unavailable"}
		},
	}

	a := New(src).Activate(context.Background(), nil)
	waitDone(t, a)

	res, finishedAt, ok := a.Result()
	require.True(t, ok)
	assert.Equal(t, model.OutcomeStatusError, res.Outcome())
	assert.Equal(t, 503, res.StatusCode())
	assert.False(t, finishedAt.Before(a.StartedAt()))
}

func TestFetchSuccessEmptyArray(t *testing.T) {
	src := &stubSource{
		fn: func() ([]model.TodoItem, error) { return nil, nil },
	}

	res := New(src).Fetch(context.Background())
	assert.True(t, res.OK())
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, model.OutcomeSuccess, res.Outcome())
	assert.Zero(t, res.StatusCode())

	st := Resolve(res)
	assert.False(t, st.IsLoading)
	assert.NoError(t, st.Err)
}

func TestFetchRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := &stubSource{fn: func() ([]model.TodoItem, error) { return mockTodos, nil }}
	bad := &stubSource{fn: func() ([]model.TodoItem, error) { return nil, errors.New("dial tcp: refused") }}

	New(ok, WithMetrics(m)).Fetch(context.Background())
	New(ok, WithMetrics(m)).Fetch(context.Background())
	New(bad, WithMetrics(m)).Fetch(context.Background())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(model.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(model.OutcomeTransportError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fetchDuration))
}

func TestActivateAgainstHTTPEndpoint(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"userId":1,"id":1,"title":"delectus aut autem","completed":false}]`))
	}))
	defer srv.Close()

	f := New(placeholder.NewAdapter(srv.URL + "/todos"))
	a := f.Activate(context.Background(), nil)
	waitDone(t, a)

	st := a.State()
	assert.False(t, st.IsLoading)
	assert.Equal(t, mockTodos, st.Items)
	assert.NoError(t, st.Err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestActivateAgainstHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := New(placeholder.NewAdapter(srv.URL)).Activate(context.Background(), nil)
	waitDone(t, a)

	st := a.State()
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Items)
	require.Error(t, st.Err)
	assert.Contains(t, st.Err.Error(), "404")
}
