/*
Package gorelay provides ordered, bounded-concurrency stream processing
with promise-based completion signaling.

Streaming (pkg/streaming):
  - stream: event-stream engine with bounded buffers and backpressure
  - relay: concurrent transforms with strict input-order output
  - bridge: wait/collect/pipe/pipeline helpers over promises
  - redisstream: Redis-backed stream sources and sinks

Promises (pkg/promise):
  - settle-once promises bridging stream completion into awaitable values

Example usage:

	import (
		"github.com/vnykmshr/gorelay/pkg/streaming/relay"
		"github.com/vnykmshr/gorelay/pkg/streaming/stream"
	)

	in := stream.FromSlice([]int{1, 2, 3, 4})
	out := relay.Map(ctx, in, relay.Config{Concurrent: 2}, fetch)

	results, err := bridge.Collect[int](out).Await(ctx)
*/
package gorelay
