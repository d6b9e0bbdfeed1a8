package weather

import (
	"context"
	"sync"
)

// Pending is the eventual result of a fetch running on its own goroutine
type Pending[T any] struct {
	done   chan struct{}
	value  T
	err    error
	cancel context.CancelFunc
}

// Go runs fn in a new goroutine with a cancellable child of ctx
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Pending[T] {
	runCtx, cancel := context.WithCancel(ctx)
	p := &Pending[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(p.done)
		defer cancel()
		p.value, p.err = fn(runCtx)
	}()

	return p
}

// Done is closed once the result is available
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the result is available or ctx is done. Giving up on ctx
// is reported as a FetchError and does not cancel the fetch itself; use
// Cancel for that.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, &FetchError{Op: "result", Cause: ctx.Err()}
	}
}

// Cancel aborts the in-flight request; Wait then reports a FetchError
func (p *Pending[T]) Cancel() {
	p.cancel()
}

// GoCurrent starts FetchCurrent in the background
func (c *Client) GoCurrent(ctx context.Context, q LocationQuery, apiKey string) *Pending[WeatherRecord] {
	return Go(ctx, func(ctx context.Context) (WeatherRecord, error) {
		return c.FetchCurrent(ctx, q, apiKey)
	})
}

// GoForecast starts FetchForecast in the background
func (c *Client) GoForecast(ctx context.Context, q LocationQuery, apiKey string) *Pending[[]ForecastEntry] {
	return Go(ctx, func(ctx context.Context) ([]ForecastEntry, error) {
		return c.FetchForecast(ctx, q, apiKey)
	})
}

// Latest tracks the newest request per key so that a slow response to an
// older request is never shown over a newer one.
type Latest struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]latestEntry
}

type latestEntry struct {
	seq    uint64
	cancel context.CancelFunc
}

// Ticket identifies one request started with Latest.Begin
type Ticket struct {
	key string
	seq uint64
}

// NewLatest creates an empty tracker
func NewLatest() *Latest {
	return &Latest{inflight: make(map[string]latestEntry)}
}

// Begin starts a request for key, cancelling the previous one still in flight.
// The returned context must be used for the new request.
func (l *Latest) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	runCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.inflight[key]; ok {
		prev.cancel()
	}
	l.seq++
	l.inflight[key] = latestEntry{seq: l.seq, cancel: cancel}

	return runCtx, Ticket{key: key, seq: l.seq}
}

// Commit reports whether t is still the newest request for its key.
// A false result means the caller must drop its result.
func (l *Latest) Commit(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, ok := l.inflight[t.key]
	if !ok || cur.seq != t.seq {
		return false
	}
	cur.cancel()
	delete(l.inflight, t.key)
	return true
}
