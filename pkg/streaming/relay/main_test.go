package relay

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches leaked intake, commit, or transform goroutines.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
