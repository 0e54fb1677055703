package promise

import (
	"context"
	"errors"
	"sync"
)

// ErrRejected is used when a promise is rejected without a cause.
var ErrRejected = errors.New("promise rejected")

// Promise is a single-settlement container for a value or an error.
//
// A promise starts pending and transitions exactly once to either resolved
// or rejected; the first Resolve or Reject wins and all later settlement
// attempts are ignored. This is the explicit settlement guard that replaces
// listener-removal tricks in event-driven code.
type Promise[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	value   T
	err     error
}

// New creates a pending promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolved creates a promise already resolved with value.
func Resolved[T any](value T) *Promise[T] {
	p := New[T]()
	p.Resolve(value)
	return p
}

// Rejected creates a promise already rejected with err.
func Rejected[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

// Resolve settles the promise with value. It reports whether this call
// performed the settlement; false means the promise was already settled.
func (p *Promise[T]) Resolve(value T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settled {
		return false
	}
	p.settled = true
	p.value = value
	close(p.done)
	return true
}

// Reject settles the promise with err. A nil err is replaced with
// ErrRejected so a rejected promise always carries a non-nil error.
// It reports whether this call performed the settlement.
func (p *Promise[T]) Reject(err error) bool {
	if err == nil {
		err = ErrRejected
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settled {
		return false
	}
	p.settled = true
	p.err = err
	close(p.done)
	return true
}

// Done returns a channel that is closed when the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Settled returns true if the promise has been resolved or rejected.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Err returns the rejection error, or nil if the promise is pending or
// resolved. Safe to call at any time.
func (p *Promise[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Value returns the resolved value and true, or the zero value and false
// if the promise is pending or rejected.
func (p *Promise[T]) Value() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.settled || p.err != nil {
		var zero T
		return zero, false
	}
	return p.value, true
}

// Await blocks until the promise settles or ctx is canceled. It returns
// the resolved value, the rejection error, or ctx.Err() on cancellation.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
