package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vnykmshr/gorelay/internal/testutil"
	"github.com/vnykmshr/gorelay/pkg/streaming/bridge"
	"github.com/vnykmshr/gorelay/pkg/streaming/relay"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestEndToEndChain runs source -> map -> filter -> sink and checks the
// sink received the transformed items in input order.
func TestEndToEndChain(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	lines := []string{"alpha", "skip", "beta", "skip", "gamma"}

	src := stream.FromSlice(lines)

	upper := relay.Map(ctx, src, relay.Config{Concurrent: 3}, func(_ context.Context, line string) (string, error) {
		// Uneven latency so completions interleave.
		time.Sleep(time.Duration(len(line)%3) * 5 * time.Millisecond)
		return strings.ToUpper(line) + "\n", nil
	})

	kept := relay.Filter(ctx, upper, relay.Config{Concurrent: 2}, func(_ context.Context, line string) (bool, error) {
		return line != "SKIP\n", nil
	})

	chunks := relay.Map(ctx, kept, relay.Config{}, func(_ context.Context, line string) ([]byte, error) {
		return []byte(line), nil
	})

	mw := testutil.NewMockWriter()

	_, err := bridge.Pipe[[]byte](ctx, chunks, stream.NewWriterSink(mw)).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, mw.String(), "ALPHA\nBETA\nGAMMA\n")
}

// TestEndToEndFailure checks that a mid-chain failure reaches both the
// sink and the awaiting caller, and stops further writes.
func TestEndToEndFailure(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	cause := errors.New("record 2 is corrupt")

	src := stream.FromSlice([]int{0, 1, 2, 3, 4})

	checked := relay.Map(ctx, src, relay.Config{Concurrent: 2}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, cause
		}
		return n, nil
	})

	dst := stream.NewBuffer[int](8)

	_, err := bridge.Pipe[int](ctx, checked, dst).Await(ctx)
	testutil.AssertEqual(t, err, cause)

	// The destination sees the items committed before the failure, then
	// the failure itself.
	_, werr := bridge.Collect[int](dst).Await(ctx)
	testutil.AssertEqual(t, werr, cause)
}

// TestCronFedPipeline drives a relay from a cron source and stops it by
// closing the source.
func TestCronFedPipeline(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ticks, err := stream.FromCron("@every 10ms", func(ts time.Time) time.Time {
		return ts
	})
	testutil.AssertNoError(t, err)

	stamps := relay.Map(ctx, ticks, relay.Config{Concurrent: 2}, func(_ context.Context, ts time.Time) (int64, error) {
		return ts.UnixNano(), nil
	})

	var seen int
	for ev := range stamps.Events() {
		if ev.Err != nil || ev.End {
			break
		}
		seen++
		if seen == 3 {
			_ = ticks.Close()
		}
	}

	if seen < 3 {
		t.Fatalf("saw %d ticks, want at least 3", seen)
	}
}
