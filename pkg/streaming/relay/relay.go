package relay

import (
	"context"
	"fmt"
	"time"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
	"github.com/vnykmshr/gorelay/pkg/promise"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

// TransformFunc processes one input item. It may call emit zero, one, or
// many times; everything it emits is released downstream as one contiguous
// block, in emit order, at the item's position in the input order.
//
// Once the relay has failed, emit returns grerrors.ErrFailed so long-running
// transforms can bail out early.
type TransformFunc[In, Out any] func(ctx context.Context, item In, emit func(Out) error) error

// EndFunc runs once all input has been consumed, all in-flight transforms
// have settled, and all queued outputs have been released. It may emit
// trailing outputs. A non-nil error fails the relay.
type EndFunc[Out any] func(ctx context.Context, emit func(Out) error) error

// Relay is the output side of a transform stage: a Stream of results plus a
// promise that settles when the stage reaches its terminal state.
type Relay[Out any] struct {
	out  *stream.Buffer[Out]
	done *promise.Promise[struct{}]
}

// Events implements stream.Stream.
func (r *Relay[Out]) Events() <-chan stream.Event[Out] {
	return r.out.Events()
}

// Close implements stream.Stream. Closing the output aborts the stage.
func (r *Relay[Out]) Close() error {
	return r.out.Close()
}

// Promise returns a promise that resolves when the relay ends cleanly and
// rejects with the first error encountered (transform error, upstream error
// event, or end hook error).
func (r *Relay[Out]) Promise() *promise.Promise[struct{}] {
	return r.done
}

// slot holds one item's transformation in flight: the outputs it emitted,
// its error, and a settlement signal. Slots are committed downstream in
// intake order regardless of settle order.
type slot[Out any] struct {
	outs []Out
	err  error
	done chan struct{}
}

// Through runs fn over every item of in with up to cfg.Concurrent transforms
// unsettled at once, releasing outputs downstream in strict input-arrival
// order.
//
// Backpressure propagates naturally: a blocked downstream stalls the ordered
// commit, which fills the bounded slot queue and stops new transform starts,
// while transforms already in flight still settle and queue their results.
//
// On the first error the relay stops admitting work, lets in-flight
// transforms settle, discards their outputs, emits a single error event, and
// rejects its promise. In-flight transforms are not forcibly aborted; a
// transform that never returns occupies its slot forever.
func Through[In, Out any](ctx context.Context, in stream.Stream[In], cfg Config, fn TransformFunc[In, Out], end EndFunc[Out]) *Relay[Out] {
	cfg = cfg.withDefaults()

	r := &Relay[Out]{
		out:  stream.NewBuffer[Out](cfg.Buffer),
		done: promise.New[struct{}](),
	}

	ins := cfg.instruments()

	// failure records the first error; it is only ever rejected.
	failure := promise.New[struct{}]()
	fail := func(err error, kind string) {
		if failure.Reject(err) {
			ins.failed(kind)
		}
	}

	// sem is the concurrency window; slots is the ordered queue of
	// completed-but-not-yet-released transforms.
	sem := make(chan struct{}, cfg.Concurrent)
	slots := make(chan *slot[Out], cfg.Concurrent)

	go intake(ctx, in, fn, ins, failure, fail, sem, slots)
	go commit(ctx, r, end, ins, failure, fail, slots)

	return r
}

func intake[In, Out any](
	ctx context.Context,
	in stream.Stream[In],
	fn TransformFunc[In, Out],
	ins instruments,
	failure *promise.Promise[struct{}],
	fail func(error, string),
	sem chan struct{},
	slots chan *slot[Out],
) {
	defer close(slots)

	for {
		select {
		case ev, ok := <-in.Events():
			if !ok {
				// Upstream aborted without a terminal event.
				fail(grerrors.ErrClosed, "upstream")
				return
			}
			if ev.Err != nil {
				fail(ev.Err, "upstream")
				return
			}
			if ev.End {
				return
			}

			ins.itemIn()

			select {
			case sem <- struct{}{}:
			case <-failure.Done():
				_ = in.Close()
				return
			case <-ctx.Done():
				fail(ctx.Err(), "canceled")
				_ = in.Close()
				return
			}

			s := &slot[Out]{done: make(chan struct{})}

			select {
			case slots <- s:
			case <-failure.Done():
				<-sem
				_ = in.Close()
				return
			case <-ctx.Done():
				fail(ctx.Err(), "canceled")
				<-sem
				_ = in.Close()
				return
			}

			go runTransform(ctx, fn, ev.Value, s, ins, failure, sem)

		case <-failure.Done():
			_ = in.Close()
			return
		case <-ctx.Done():
			fail(ctx.Err(), "canceled")
			_ = in.Close()
			return
		}
	}
}

func runTransform[In, Out any](
	ctx context.Context,
	fn TransformFunc[In, Out],
	item In,
	s *slot[Out],
	ins instruments,
	failure *promise.Promise[struct{}],
	sem chan struct{},
) {
	ins.inFlight(1)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			s.err = fmt.Errorf("transform panicked: %v", rec)
		}
		ins.observe(time.Since(start))
		ins.inFlight(-1)
		<-sem
		close(s.done)
	}()

	emit := func(v Out) error {
		if failure.Settled() {
			return grerrors.ErrFailed
		}
		s.outs = append(s.outs, v)
		return nil
	}

	s.err = fn(ctx, item, emit)
}

func commit[Out any](
	ctx context.Context,
	r *Relay[Out],
	end EndFunc[Out],
	ins instruments,
	failure *promise.Promise[struct{}],
	fail func(error, string),
	slots chan *slot[Out],
) {
	for s := range slots {
		ins.queued(1)
		<-s.done
		ins.queued(-1)

		if failure.Settled() {
			// Discard results that settled after the failure.
			continue
		}
		if s.err != nil {
			fail(s.err, "transform")
			continue
		}

		for _, v := range s.outs {
			if err := r.out.Write(ctx, v); err != nil {
				fail(err, "downstream")
				break
			}
			ins.itemOut()
		}
	}

	if !failure.Settled() && end != nil {
		if err := runEnd(ctx, end, r, ins); err != nil {
			fail(err, "end")
		}
	}

	if failure.Settled() {
		err := failure.Err()
		_ = r.out.Fail(err)
		r.done.Reject(err)
		return
	}

	_ = r.out.End()
	r.done.Resolve(struct{}{})
}

func runEnd[Out any](ctx context.Context, end EndFunc[Out], r *Relay[Out], ins instruments) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("end hook panicked: %v", rec)
		}
	}()

	emit := func(v Out) error {
		if werr := r.out.Write(ctx, v); werr != nil {
			return werr
		}
		ins.itemOut()
		return nil
	}

	return end(ctx, emit)
}
