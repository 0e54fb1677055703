package bridge

import (
	"bytes"
	"context"
	"strings"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
	"github.com/vnykmshr/gorelay/pkg/metrics"
	"github.com/vnykmshr/gorelay/pkg/promise"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

func resolved(op string) {
	if metrics.DefaultRegistry != nil {
		metrics.DefaultRegistry.BridgeResolved.WithLabelValues(op).Inc()
	}
}

func rejected(op string) {
	if metrics.DefaultRegistry != nil {
		metrics.DefaultRegistry.BridgeRejected.WithLabelValues(op).Inc()
	}
}

// Wait returns a promise that resolves when s ends and rejects with the
// stream's error event. A stream whose channel closes without a terminal
// event rejects with grerrors.ErrClosed. The promise settles exactly once;
// whichever terminal signal arrives first wins.
//
// Data values are discarded. Use Collect to keep them.
func Wait[T any](s stream.Stream[T]) *promise.Promise[struct{}] {
	p := promise.New[struct{}]()

	go func() {
		for ev := range s.Events() {
			if ev.Err != nil {
				rejected("wait")
				p.Reject(ev.Err)
				return
			}
			if ev.End {
				resolved("wait")
				p.Resolve(struct{}{})
				return
			}
		}
		rejected("wait")
		p.Reject(grerrors.ErrClosed)
	}()

	return p
}

// Collect returns a promise that resolves with every data value of s, in
// stream order, once s ends. Any error event rejects the promise and the
// values gathered so far are discarded.
func Collect[T any](s stream.Stream[T]) *promise.Promise[[]T] {
	p := promise.New[[]T]()

	go func() {
		var values []T
		for ev := range s.Events() {
			if ev.Err != nil {
				rejected("collect")
				p.Reject(ev.Err)
				return
			}
			if ev.End {
				resolved("collect")
				p.Resolve(values)
				return
			}
			values = append(values, ev.Value)
		}
		rejected("collect")
		p.Reject(grerrors.ErrClosed)
	}()

	return p
}

// ConcatBytes resolves with the concatenation of every chunk of s. An empty
// stream resolves with an empty, non-nil slice.
func ConcatBytes(s stream.Stream[[]byte]) *promise.Promise[[]byte] {
	p := promise.New[[]byte]()

	go func() {
		var buf bytes.Buffer
		for ev := range s.Events() {
			if ev.Err != nil {
				rejected("concat")
				p.Reject(ev.Err)
				return
			}
			if ev.End {
				resolved("concat")
				p.Resolve(buf.Bytes())
				return
			}
			buf.Write(ev.Value)
		}
		rejected("concat")
		p.Reject(grerrors.ErrClosed)
	}()

	return p
}

// ConcatStrings resolves with the concatenation of every string of s.
func ConcatStrings(s stream.Stream[string]) *promise.Promise[string] {
	p := promise.New[string]()

	go func() {
		var b strings.Builder
		for ev := range s.Events() {
			if ev.Err != nil {
				rejected("concat")
				p.Reject(ev.Err)
				return
			}
			if ev.End {
				resolved("concat")
				p.Resolve(b.String())
				return
			}
			b.WriteString(ev.Value)
		}
		rejected("concat")
		p.Reject(grerrors.ErrClosed)
	}()

	return p
}

// Pipe copies every data value of src into dst and settles when the copy
// finishes. A clean end of src calls dst.End and resolves; a src error is
// forwarded to dst.Fail and rejects; a dst write failure closes src to stop
// the producer and rejects with the write error.
func Pipe[T any](ctx context.Context, src stream.Stream[T], dst stream.Writer[T]) *promise.Promise[struct{}] {
	p := promise.New[struct{}]()

	go func() {
		for {
			select {
			case ev, ok := <-src.Events():
				if !ok {
					_ = dst.Fail(grerrors.ErrClosed)
					rejected("pipe")
					p.Reject(grerrors.ErrClosed)
					return
				}
				if ev.Err != nil {
					_ = dst.Fail(ev.Err)
					rejected("pipe")
					p.Reject(ev.Err)
					return
				}
				if ev.End {
					if err := dst.End(); err != nil {
						rejected("pipe")
						p.Reject(err)
						return
					}
					resolved("pipe")
					p.Resolve(struct{}{})
					return
				}
				if err := dst.Write(ctx, ev.Value); err != nil {
					_ = src.Close()
					rejected("pipe")
					p.Reject(err)
					return
				}

			case <-ctx.Done():
				_ = src.Close()
				_ = dst.Fail(ctx.Err())
				rejected("pipe")
				p.Reject(ctx.Err())
				return
			}
		}
	}()

	return p
}
