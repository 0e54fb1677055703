package redisstream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
	"github.com/vnykmshr/gorelay/pkg/common/validation"
	"github.com/vnykmshr/gorelay/pkg/metrics"
	"github.com/vnykmshr/gorelay/pkg/streaming/stream"
)

// Config holds configuration for Redis-backed stream endpoints.
type Config struct {
	// Redis client used for all operations.
	Redis redis.UniversalClient

	// Key is the Redis list key to read from or write to.
	Key string

	// PopTimeout bounds each blocking pop so the source can notice Close.
	// Defaults to 1s.
	PopTimeout time.Duration

	// OpTimeout bounds each sink push. Defaults to 500ms.
	OpTimeout time.Duration

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry
}

// DefaultConfig returns a default Redis stream configuration.
func DefaultConfig() Config {
	return Config{
		PopTimeout: time.Second,
		OpTimeout:  500 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	if c.PopTimeout <= 0 {
		c.PopTimeout = time.Second
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = 500 * time.Millisecond
	}
	return c
}

func (c Config) validate(module string) error {
	if err := validation.ValidateNotNil(module, "redis", c.Redis); err != nil {
		return err
	}
	return validation.ValidateNotEmpty(module, "key", c.Key)
}

// RedisError wraps a Redis operation failure with the operation name.
type RedisError struct {
	Op  string
	Err error
}

func (e *RedisError) Error() string {
	return fmt.Sprintf("redis %s: %v", e.Op, e.Err)
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

// listSource pops items from a Redis list until closed.
type listSource struct {
	*stream.Buffer[string]
	cancel context.CancelFunc
	once   sync.Once
}

// NewListSource creates a Stream that pops values from the Redis list at
// cfg.Key via BLPOP. The stream never ends on its own: it keeps polling the
// list until Close, and fails on the first Redis error other than an empty
// poll.
func NewListSource(cfg Config) (stream.Stream[string], error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate("redisstream.source"); err != nil {
		return nil, err
	}

	b := stream.NewBuffer[string](stream.DefaultBufferSize)
	ctx, cancel := context.WithCancel(context.Background())
	s := &listSource{Buffer: b, cancel: cancel}

	go func() {
		for {
			vals, err := cfg.Redis.BLPop(ctx, cfg.PopTimeout, cfg.Key).Result()
			if errors.Is(err, redis.Nil) {
				// Empty poll, try again.
				continue
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if cfg.Metrics != nil {
					cfg.Metrics.SourceEvents.WithLabelValues("redis_list", "error").Inc()
				}
				_ = b.Fail(&RedisError{"blpop", err})
				return
			}

			// BLPOP returns [key, value].
			if err := b.Write(ctx, vals[1]); err != nil {
				return
			}
			if cfg.Metrics != nil {
				cfg.Metrics.SourceEvents.WithLabelValues("redis_list", "value").Inc()
			}
		}
	}()

	return s, nil
}

// Close stops polling and aborts the stream.
func (s *listSource) Close() error {
	s.once.Do(func() {
		s.cancel()
		_ = s.Buffer.Close()
	})
	return nil
}

// listSink pushes items onto a Redis list.
type listSink struct {
	cfg Config

	mu   sync.Mutex
	term bool
}

// NewListSink creates a Writer that pushes each value onto the Redis list at
// cfg.Key via RPUSH. A push failure surfaces as the write error; under Pipe
// that rejects the copy and closes the source.
func NewListSink(cfg Config) (stream.Writer[string], error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate("redisstream.sink"); err != nil {
		return nil, err
	}
	return &listSink{cfg: cfg}, nil
}

func (s *listSink) Write(ctx context.Context, value string) error {
	s.mu.Lock()
	term := s.term
	s.mu.Unlock()
	if term {
		return grerrors.ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	if err := s.cfg.Redis.RPush(ctx, s.cfg.Key, value).Err(); err != nil {
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.SinkErrors.WithLabelValues("redis_list").Inc()
		}
		return &RedisError{"rpush", err}
	}

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.SinkWrites.WithLabelValues("redis_list").Inc()
	}
	return nil
}

func (s *listSink) End() error {
	return s.terminate()
}

func (s *listSink) Fail(err error) error {
	return s.terminate()
}

func (s *listSink) terminate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.term {
		return grerrors.ErrClosed
	}
	s.term = true
	return nil
}
