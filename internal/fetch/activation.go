package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Activation is one lifecycle-bound run of the fetcher. It starts in
// InitialState, runs a single fetch in the background and records the
// result once. Deactivating before the fetch resolves turns the late
// update into a no-op; the request itself is left to finish.
type Activation struct {
	id      string
	fetcher *Fetcher
	once    sync.Once

	mu         sync.Mutex
	startedAt  time.Time
	state      State
	result     Result
	finishedAt time.Time
	active     bool
	onUpdate   func(State)

	done chan struct{}
}

// NewActivation creates an activation in the initial state without
// issuing the request. onUpdate, if non-nil, is called from the fetch
// goroutine with the terminal state unless the activation was
// deactivated first.
func (f *Fetcher) NewActivation(onUpdate func(State)) *Activation {
	return &Activation{
		id:       uuid.NewString(),
		fetcher:  f,
		state:    InitialState(),
		active:   true,
		onUpdate: onUpdate,
		done:     make(chan struct{}),
	}
}

// Activate creates an activation and starts its fetch.
func (f *Fetcher) Activate(ctx context.Context, onUpdate func(State)) *Activation {
	a := f.NewActivation(onUpdate)
	a.Start(ctx)
	return a
}

// Start issues the activation's single request in the background. Calls
// after the first are no-ops.
func (a *Activation) Start(ctx context.Context) {
	a.once.Do(func() {
		f := a.fetcher

		a.mu.Lock()
		a.startedAt = f.now()
		a.mu.Unlock()

		f.log.Debug().Str("activation", a.id).Msg("activation started")

		go func() {
			defer close(a.done)
			a.resolve(f.Fetch(ctx), f.now())
		}()
	})
}

// resolve records the terminal result exactly once.
func (a *Activation) resolve(res Result, at time.Time) {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return
	}
	a.result = res
	a.finishedAt = at
	a.state = Resolve(res)
	st := a.state
	cb := a.onUpdate
	a.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}

// ID returns the unique activation identifier.
func (a *Activation) ID() string {
	return a.id
}

// StartedAt returns when the request was issued, or the zero time before
// Start.
func (a *Activation) StartedAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startedAt
}

// State returns a snapshot of the current state.
func (a *Activation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Result returns the recorded result and when it was recorded. ok is
// false until the activation has resolved while still active.
func (a *Activation) Result() (res Result, finishedAt time.Time, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.IsLoading {
		return Result{}, time.Time{}, false
	}
	return a.result, a.finishedAt, true
}

// Done is closed when the background fetch has returned, whether or not
// its result was recorded. It never closes if Start is not called.
func (a *Activation) Done() <-chan struct{} {
	return a.done
}

// Deactivate detaches the activation from its owner. A result arriving
// afterwards is dropped and onUpdate is not called. Safe to call more
// than once.
func (a *Activation) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = false
	a.onUpdate = nil
}

// Active reports whether the activation is still attached.
func (a *Activation) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}
