/*
Package promise provides settle-once promises for bridging event-driven
streams into awaitable completion values.

A Promise settles exactly once: the first Resolve or Reject wins and every
later settlement attempt returns false. Consumers wait with Await (context
aware) or select on Done.

Basic Usage:

	p := promise.New[int]()

	go func() {
		v, err := compute()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(v)
	}()

	result, err := p.Await(ctx)

The single-settlement guarantee is what makes promises safe to settle from
multiple signal paths (an end event and an error event racing, for example):
whichever signal arrives first determines the outcome and the loser is
silently ignored.
*/
package promise
