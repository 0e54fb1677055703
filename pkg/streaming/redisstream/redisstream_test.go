package redisstream

import (
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/gorelay/internal/testutil"
	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
)

func TestSourceConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"nil client", Config{Key: "jobs"}},
		{"empty key", Config{Redis: nil, Key: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewListSource(tt.cfg)
			testutil.AssertError(t, err)
			testutil.AssertEqual(t, errors.Is(err, grerrors.ErrInvalidConfiguration), true)
		})
	}
}

func TestSinkConfigValidation(t *testing.T) {
	_, err := NewListSink(Config{Key: "jobs"})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, errors.Is(err, grerrors.ErrInvalidConfiguration), true)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	testutil.AssertEqual(t, cfg.PopTimeout, time.Second)
	testutil.AssertEqual(t, cfg.OpTimeout, 500*time.Millisecond)

	cfg = DefaultConfig()
	testutil.AssertEqual(t, cfg.PopTimeout, time.Second)
}

func TestRedisError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RedisError{Op: "rpush", Err: cause}

	testutil.AssertEqual(t, err.Error(), "redis rpush: connection refused")
	testutil.AssertEqual(t, errors.Is(err, cause), true)
}
