package relay

import (
	"context"
	"fmt"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
	"github.com/vnykmshr/gorelay/pkg/promise"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

// Map applies fn to every item of in, emitting exactly one output per input.
// Up to cfg.Concurrent applications run at once; outputs preserve input
// order regardless of completion order.
func Map[In, Out any](ctx context.Context, in stream.Stream[In], cfg Config, fn func(ctx context.Context, item In) (Out, error)) *Relay[Out] {
	return Through(ctx, in, cfg, func(ctx context.Context, item In, emit func(Out) error) error {
		v, err := fn(ctx, item)
		if err != nil {
			return err
		}
		return emit(v)
	}, nil)
}

// Filter re-emits the original, unmodified items for which pred returns
// true. Concurrency and ordering rules are the same as Map's: surviving
// items never reorder relative to their original positions.
func Filter[T any](ctx context.Context, in stream.Stream[T], cfg Config, pred func(ctx context.Context, item T) (bool, error)) *Relay[T] {
	return Through(ctx, in, cfg, func(ctx context.Context, item T, emit func(T) error) error {
		keep, err := pred(ctx, item)
		if err != nil {
			return err
		}
		if !keep {
			return nil
		}
		return emit(item)
	}, nil)
}

// Reduce folds every item of in into a single accumulator and resolves the
// final value when the stream ends. Folds run strictly sequentially: each
// step starts only after the previous one has settled, regardless of
// cfg.Concurrent, because the accumulator is a single dependency chain.
//
// Nothing is emitted downstream. On any error the promise rejects and the
// partial accumulator is discarded.
func Reduce[T, A any](ctx context.Context, in stream.Stream[T], cfg Config, initial A, fn func(ctx context.Context, acc A, item T) (A, error)) *promise.Promise[A] {
	cfg = cfg.withDefaults()
	ins := cfg.instruments()
	p := promise.New[A]()

	go func() {
		acc := initial

		for {
			select {
			case ev, ok := <-in.Events():
				if !ok {
					ins.failed("upstream")
					p.Reject(grerrors.ErrClosed)
					return
				}
				if ev.Err != nil {
					ins.failed("upstream")
					p.Reject(ev.Err)
					return
				}
				if ev.End {
					p.Resolve(acc)
					return
				}

				ins.itemIn()

				next, err := fold(ctx, fn, acc, ev.Value)
				if err != nil {
					ins.failed("transform")
					p.Reject(err)
					_ = in.Close()
					return
				}
				acc = next

			case <-ctx.Done():
				ins.failed("canceled")
				p.Reject(ctx.Err())
				_ = in.Close()
				return
			}
		}
	}()

	return p
}

func fold[T, A any](ctx context.Context, fn func(context.Context, A, T) (A, error), acc A, item T) (next A, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("fold panicked: %v", rec)
		}
	}()

	return fn(ctx, acc, item)
}
