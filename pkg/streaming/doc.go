/*
Package streaming groups the stream-processing components of gorelay.

  - stream: the event stream engine with sources, sinks, and buffered streams
  - relay: bounded-concurrency transforms that preserve input order
  - bridge: stream-to-promise bridging and pipeline composition
  - redisstream: Redis list sources and sinks

A typical chain reads a source, transforms it with relays, and settles
through a bridge:

	src := stream.FromSlice(urls)
	pages := relay.Map(ctx, src, relay.Config{Concurrent: 8}, fetch)
	_, err := bridge.Wait(pages).Await(ctx)
*/
package streaming
