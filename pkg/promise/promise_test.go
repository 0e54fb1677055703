package promise

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/gorelay/internal/testutil"
)

func TestResolve(t *testing.T) {
	p := New[int]()
	testutil.AssertEqual(t, p.Settled(), false)

	testutil.AssertEqual(t, p.Resolve(42), true)
	testutil.AssertEqual(t, p.Settled(), true)

	v, ok := p.Value()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 42)
	testutil.AssertNoError(t, p.Err())
}

func TestReject(t *testing.T) {
	cause := errors.New("boom")
	p := New[string]()

	testutil.AssertEqual(t, p.Reject(cause), true)
	testutil.AssertEqual(t, p.Settled(), true)
	testutil.AssertEqual(t, p.Err(), cause)

	_, ok := p.Value()
	testutil.AssertEqual(t, ok, false)
}

func TestFirstSettlementWins(t *testing.T) {
	p := New[int]()

	testutil.AssertEqual(t, p.Resolve(1), true)
	testutil.AssertEqual(t, p.Resolve(2), false)
	testutil.AssertEqual(t, p.Reject(errors.New("late")), false)

	v, ok := p.Value()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 1)
	testutil.AssertNoError(t, p.Err())
}

func TestRejectThenResolveIgnored(t *testing.T) {
	cause := errors.New("first")
	p := New[int]()

	testutil.AssertEqual(t, p.Reject(cause), true)
	testutil.AssertEqual(t, p.Resolve(9), false)
	testutil.AssertEqual(t, p.Err(), cause)
}

func TestRejectNil(t *testing.T) {
	p := New[int]()
	p.Reject(nil)
	testutil.AssertEqual(t, p.Err(), ErrRejected)
}

func TestAwait(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	p := New[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Resolve("done")
	}()

	v, err := p.Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "done")
}

func TestAwaitCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New[int]()
	_, err := p.Await(ctx)
	testutil.AssertEqual(t, err, context.Canceled)
}

func TestAwaitRejected(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	cause := errors.New("failed")
	p := Rejected[int](cause)

	_, err := p.Await(ctx)
	testutil.AssertEqual(t, err, cause)
}

func TestResolvedConstructor(t *testing.T) {
	p := Resolved(7)
	v, ok := p.Value()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 7)
}

func TestConcurrentSettlement(t *testing.T) {
	p := New[int]()

	var wg sync.WaitGroup
	var settled int64
	results := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				results <- p.Resolve(n)
			} else {
				results <- p.Reject(errors.New("racer"))
			}
		}(i)
	}

	wg.Wait()
	close(results)

	for won := range results {
		if won {
			settled++
		}
	}

	// Exactly one goroutine performs the settlement.
	testutil.AssertEqual(t, settled, int64(1))
	testutil.AssertEqual(t, p.Settled(), true)
}

func TestDone(t *testing.T) {
	p := New[int]()

	select {
	case <-p.Done():
		t.Fatal("done channel closed before settlement")
	default:
	}

	p.Resolve(1)

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel not closed after settlement")
	}
}
