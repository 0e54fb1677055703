/*
Package redisstream provides Redis-backed stream endpoints.

A list source turns a Redis list into a stream, a list sink turns a stream
into list pushes, and Pipe connects them to anything else in the library:

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	src, err := redisstream.NewListSource(redisstream.Config{
		Redis: rdb,
		Key:   "jobs:incoming",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	out := relay.Map(ctx, src, relay.Config{Concurrent: 8}, process)

Sources poll with BLPOP using a bounded per-call timeout so Close takes
effect promptly. A source never ends on its own; it fails on the first Redis
error and otherwise runs until closed.
*/
package redisstream
