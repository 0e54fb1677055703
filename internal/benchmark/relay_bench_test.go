package benchmark

import (
	"context"
	"testing"

	"github.com/vnykmshr/gorelay/pkg/streaming/bridge"
	"github.com/vnykmshr/gorelay/pkg/streaming/relay"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

func BenchmarkMapThroughput(b *testing.B) {
	ctx := context.Background()
	items := make([]int, 1000)

	for _, concurrent := range []int{1, 8, 64} {
		b.Run(concurrencyName(concurrent), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r := relay.Map(ctx, stream.FromSlice(items), relay.Config{Concurrent: concurrent}, func(_ context.Context, v int) (int, error) {
					return v + 1, nil
				})
				if _, err := bridge.Wait[int](r).Await(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReduce(b *testing.B) {
	ctx := context.Background()
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := relay.Reduce(ctx, stream.FromSlice(items), relay.Config{}, 0, func(_ context.Context, acc, v int) (int, error) {
			return acc + v, nil
		})
		if _, err := p.Await(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func concurrencyName(n int) string {
	switch n {
	case 1:
		return "sequential"
	case 8:
		return "moderate"
	default:
		return "wide"
	}
}
