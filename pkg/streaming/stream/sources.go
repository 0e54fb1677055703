package stream

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
)

// FromSlice creates a Stream emitting each element of the slice in order,
// followed by a normal end.
func FromSlice[T any](items []T) Stream[T] {
	b := NewBuffer[T](DefaultBufferSize)

	go func() {
		ctx := context.Background()
		for _, v := range items {
			if err := b.Write(ctx, v); err != nil {
				return
			}
		}
		_ = b.End()
	}()

	return b
}

// FromChannel creates a Stream emitting each value received from ch. The
// stream ends when ch is closed.
func FromChannel[T any](ch <-chan T) Stream[T] {
	b := NewBuffer[T](DefaultBufferSize)

	go func() {
		ctx := context.Background()
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					_ = b.End()
					return
				}
				if err := b.Write(ctx, v); err != nil {
					return
				}
			case <-b.closed:
				return
			}
		}
	}()

	return b
}

// Generate creates a Stream from a pull generator. The generator is called
// repeatedly; returning false ends the stream.
func Generate[T any](next func() (T, bool)) Stream[T] {
	b := NewBuffer[T](DefaultBufferSize)

	go func() {
		ctx := context.Background()
		for {
			v, ok := next()
			if !ok {
				_ = b.End()
				return
			}
			if err := b.Write(ctx, v); err != nil {
				return
			}
		}
	}()

	return b
}

// Empty creates a Stream that ends immediately without emitting anything.
func Empty[T any]() Stream[T] {
	b := NewBuffer[T](1)
	_ = b.End()
	return b
}

// Failed creates a Stream that fails immediately with err.
func Failed[T any](err error) Stream[T] {
	b := NewBuffer[T](1)
	_ = b.Fail(err)
	return b
}

// cronStream emits one item per cron firing until closed.
type cronStream[T any] struct {
	*Buffer[T]
	cron *cron.Cron
	once sync.Once
}

// FromCron creates a Stream that emits gen(firingTime) on every firing of
// the cron schedule (standard 5-field cron syntax, robfig/cron/v3).
//
// Cron streams never end on their own; Close stops the schedule and
// terminates the stream. An invalid schedule returns a ValidationError.
func FromCron[T any](schedule string, gen func(time.Time) T) (Stream[T], error) {
	b := NewBuffer[T](DefaultBufferSize)
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		_ = b.Write(context.Background(), gen(time.Now()))
	})
	if err != nil {
		return nil, grerrors.NewValidationError("stream", "schedule", schedule, "invalid cron expression").
			WithHint("use standard 5-field cron syntax")
	}

	c.Start()

	return &cronStream[T]{Buffer: b, cron: c}, nil
}

// Close stops the cron schedule and aborts the stream.
func (s *cronStream[T]) Close() error {
	s.once.Do(func() {
		s.cron.Stop()
		_ = s.Buffer.Close()
	})
	return nil
}
