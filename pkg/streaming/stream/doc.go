/*
Package stream provides the event-stream engine underlying gorelay: bounded
buffers that carry data, error, and end events between producers and
consumers with blocking backpressure.

Core Concepts:

A stream delivers Event values over a channel. Data events arrive in write
order, followed by at most one terminal event (End or Err), after which the
channel closes. A channel that closes without a terminal event was aborted
via Close; consumers treat that as errors.ErrClosed.

The write side follows the Go channel convention: the producer that writes
also ends. Write blocks while the buffer is full, which is the backpressure
signal; producers feeding a slow consumer are paced automatically.

Basic Usage:

	b := stream.NewBuffer[string](16)

	go func() {
		for _, s := range []string{"a", "b", "c"} {
			if err := b.Write(ctx, s); err != nil {
				return
			}
		}
		b.End()
	}()

	for ev := range b.Events() {
		if ev.Err != nil {
			log.Fatal(ev.Err)
		}
		if ev.End {
			break
		}
		fmt.Println(ev.Value)
	}

Stream Creation:

	// From slice
	s := stream.FromSlice([]int{1, 2, 3})

	// From channel
	s := stream.FromChannel(ch)

	// From a pull generator
	s := stream.Generate(func() (int, bool) { ... })

	// One item per cron firing
	s, err := stream.FromCron("@every 1m", func(t time.Time) Job { ... })

Sinks:

	// Forward byte chunks to any io.Writer
	sink := stream.NewWriterSink(file)

Buffers also implement Writer, so they compose directly with the relay and
bridge packages.
*/
package stream
