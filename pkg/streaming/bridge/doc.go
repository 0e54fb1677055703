/*
Package bridge connects streams to promises and composes stream stages.

Wait, Collect, ConcatBytes, and ConcatStrings turn a stream's terminal state
into a settle-once promise: End resolves, an error event rejects, and a
channel that closes without a terminal event rejects with grerrors.ErrClosed.

Pipe copies one stream into a writer, propagating errors in both directions:
a source error fails the destination, and a destination write failure closes
the source.

Pipeline chains Stage functions and settles with the whole chain's outcome:

	err := bridge.Pipeline(ctx, src,
		parseStage,
		enrichStage,
		writeStage,
	).Await(ctx)

The first error from any stage rejects the pipeline and cancels the context
handed to every stage.
*/
package bridge
