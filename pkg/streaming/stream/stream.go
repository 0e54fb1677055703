package stream

import (
	"context"
	"sync"
	"sync/atomic"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
)

// DefaultBufferSize is the buffer capacity used when none is configured.
const DefaultBufferSize = 100

// Event is the envelope for the three stream signals: a data item, an
// error, or end-of-stream. Exactly one of the three is set per event.
type Event[T any] struct {
	Value T
	Err   error
	End   bool
}

// Terminal returns true for end and error events.
func (e Event[T]) Terminal() bool {
	return e.End || e.Err != nil
}

// Stream is the read side of an event stream.
//
// The events channel delivers data events in order, followed by at most one
// terminal event (End or Err), after which the channel is closed. If the
// channel closes without a terminal event the stream was aborted via Close;
// consumers should treat that as grerrors.ErrClosed.
type Stream[T any] interface {
	// Events returns the channel of events.
	Events() <-chan Event[T]

	// Close aborts the stream early. Producers blocked on Write are
	// released and the events channel is closed promptly; buffered items
	// may be dropped. Safe to call multiple times and concurrently.
	Close() error
}

// Writer is the write side of an event stream.
//
// Write follows the Go channel convention: the producer that writes is the
// one that ends. Write must not be called concurrently with End or Fail;
// multiple producers need external coordination.
type Writer[T any] interface {
	// Write delivers a data item downstream. It blocks while the buffer is
	// full (backpressure) and returns grerrors.ErrClosed once the stream is
	// terminal, or ctx.Err() on cancellation.
	Write(ctx context.Context, value T) error

	// End marks a normal end of stream. The first terminal call wins;
	// later End/Fail calls return grerrors.ErrClosed.
	End() error

	// Fail marks the stream failed with err. Same terminal semantics as End.
	Fail(err error) error
}

// Buffer is a bounded duplex stream: a Writer feeding a Stream through a
// fixed-capacity buffer. A full buffer blocks the producer, which is the
// backpressure signal.
type Buffer[T any] struct {
	in     chan Event[T]
	out    chan Event[T]
	closed chan struct{}
	term   int32 // atomic, set once by the first End/Fail
	once   sync.Once
}

// NewBuffer creates a Buffer with the given capacity. Sizes below 1 use
// DefaultBufferSize.
func NewBuffer[T any](size int) *Buffer[T] {
	if size < 1 {
		size = DefaultBufferSize
	}

	b := &Buffer[T]{
		in:     make(chan Event[T], size),
		out:    make(chan Event[T]),
		closed: make(chan struct{}),
	}

	go b.pump()

	return b
}

// pump owns the out channel: it forwards events until a terminal event or
// an abort, then closes out. Keeping channel closure on this single
// goroutine means producers can never hit a closed-channel send.
func (b *Buffer[T]) pump() {
	defer close(b.out)

	for {
		select {
		case ev := <-b.in:
			select {
			case b.out <- ev:
			case <-b.closed:
				return
			}
			if ev.Terminal() {
				return
			}
		case <-b.closed:
			return
		}
	}
}

// Events implements Stream.
func (b *Buffer[T]) Events() <-chan Event[T] {
	return b.out
}

// Close implements Stream. It aborts the buffer: pending items are dropped
// and blocked producers are released with ErrClosed.
func (b *Buffer[T]) Close() error {
	atomic.StoreInt32(&b.term, 1)
	b.once.Do(func() { close(b.closed) })
	return nil
}

// Write implements Writer.
func (b *Buffer[T]) Write(ctx context.Context, value T) error {
	if atomic.LoadInt32(&b.term) != 0 {
		return grerrors.ErrClosed
	}

	select {
	case b.in <- Event[T]{Value: value}:
		return nil
	case <-b.closed:
		return grerrors.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// End implements Writer.
func (b *Buffer[T]) End() error {
	return b.terminate(Event[T]{End: true})
}

// Fail implements Writer.
func (b *Buffer[T]) Fail(err error) error {
	return b.terminate(Event[T]{Err: err})
}

func (b *Buffer[T]) terminate(ev Event[T]) error {
	if !atomic.CompareAndSwapInt32(&b.term, 0, 1) {
		return grerrors.ErrClosed
	}

	select {
	case b.in <- ev:
		return nil
	case <-b.closed:
		return grerrors.ErrClosed
	}
}
