package bridge

import (
	"context"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
	"github.com/vnykmshr/gorelay/pkg/metrics"
	"github.com/vnykmshr/gorelay/pkg/promise"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

// Stage transforms one stream into another. Relay constructors curry
// naturally into stages:
//
//	func double(ctx context.Context, in stream.Stream[int]) stream.Stream[int] {
//		return relay.Map(ctx, in, cfg, doubleFn)
//	}
type Stage[T any] func(ctx context.Context, in stream.Stream[T]) stream.Stream[T]

// Pipeline chains stages onto src, drains the final stream, and returns a
// promise that resolves when it ends cleanly or rejects with the first error
// raised by any stage.
func Pipeline[T any](ctx context.Context, src stream.Stream[T], stages ...Stage[T]) *promise.Promise[struct{}] {
	return NamedPipeline(ctx, "default", src, stages...)
}

// NamedPipeline is Pipeline with a name label for metrics.
//
// Every stage receives a derived context that is canceled when the pipeline
// settles, so stages blocked on a stalled neighbor are released after an
// early failure.
func NamedPipeline[T any](ctx context.Context, name string, src stream.Stream[T], stages ...Stage[T]) *promise.Promise[struct{}] {
	reg := metrics.DefaultRegistry

	pctx, cancel := context.WithCancel(ctx)

	cur := src
	for _, stage := range stages {
		cur = stage(pctx, cur)
	}

	if reg != nil {
		reg.PipelineStages.WithLabelValues(name).Set(float64(len(stages)))
	}

	p := promise.New[struct{}]()

	go func() {
		defer cancel()
		if reg != nil {
			defer reg.PipelineStages.WithLabelValues(name).Set(0)
		}

		outcome := func(o string) {
			if reg != nil {
				reg.PipelineRuns.WithLabelValues(name, o).Inc()
			}
		}

		for ev := range cur.Events() {
			if ev.Err != nil {
				outcome("error")
				rejected("pipeline")
				p.Reject(ev.Err)
				return
			}
			if ev.End {
				outcome("ok")
				resolved("pipeline")
				p.Resolve(struct{}{})
				return
			}
		}
		outcome("error")
		rejected("pipeline")
		p.Reject(grerrors.ErrClosed)
	}()

	return p
}
