// Package fetch implements the todo fetcher: one request per activation,
// normalised into a loading/items/error state.
package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source"
)

// Result is the terminal outcome of a single fetch. Exactly one of Items
// (possibly empty) or Failure is meaningful: Failure is nil on success.
type Result struct {
	Items   []model.TodoItem
	Failure source.Failure
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Outcome returns the journal outcome constant for the result.
func (r Result) Outcome() string {
	if r.Failure == nil {
		return model.OutcomeSuccess
	}
	return r.Failure.Outcome()
}

// StatusCode returns the HTTP status for status failures and 0 otherwise.
func (r Result) StatusCode() int {
	if se, ok := r.Failure.(*source.StatusError); ok {
		return se.StatusCode
	}
	return 0
}

// Fetcher performs the todo fetch against a source.Source.
type Fetcher struct {
	src     source.Source
	log     zerolog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// WithMetrics records every fetch on m.
func WithMetrics(m *Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// New creates a Fetcher reading from src.
func New(src source.Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		src: src,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Endpoint returns the URL of the underlying source.
func (f *Fetcher) Endpoint() string {
	return f.src.Endpoint()
}

// Fetch issues exactly one request and converts any failure into the
// Result. It never panics on source errors and never retries.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := f.now()

	items, err := f.src.FetchTodos(ctx)

	var res Result
	if err != nil {
		res = Result{Items: []model.TodoItem{}, Failure: source.AsFailure(err)}
	} else {
		if items == nil {
			items = []model.TodoItem{}
		}
		res = Result{Items: items}
	}

	elapsed := f.now().Sub(start)
	f.metrics.observe(res.Outcome(), elapsed)

	ev := f.log.Debug()
	if !res.OK() {
		ev = f.log.Warn().Str("error", res.Failure.Error())
	}
	ev.Str("source", string(f.src.Type())).
		Str("endpoint", f.src.Endpoint()).
		Str("outcome", res.Outcome()).
		Int("items", len(res.Items)).
		Dur("elapsed", elapsed).
		Msg("fetched todos")

	return res
}
