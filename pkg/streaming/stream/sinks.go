package stream

import (
	"context"
	"io"
	"sync"

	grerrors "github.com/vnykmshr/gorelay/pkg/common/errors"
)

// writerSink adapts an io.Writer into a stream Writer for byte chunks.
type writerSink struct {
	mu   sync.Mutex
	w    io.Writer
	term bool
}

// NewWriterSink creates a Writer that forwards each chunk to w. A write
// failure is returned to the caller as-is (a destination error under Pipe).
// End closes w if it implements io.Closer.
func NewWriterSink(w io.Writer) Writer[[]byte] {
	return &writerSink{w: w}
}

func (s *writerSink) Write(ctx context.Context, chunk []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.term {
		return grerrors.ErrClosed
	}

	_, err := s.w.Write(chunk)
	return err
}

func (s *writerSink) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.term {
		return grerrors.ErrClosed
	}
	s.term = true

	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *writerSink) Fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.term {
		return grerrors.ErrClosed
	}
	s.term = true

	if c, ok := s.w.(io.Closer); ok {
		_ = c.Close()
	}
	return nil
}
