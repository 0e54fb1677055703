package stream

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches any leaked pump or source goroutines.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
