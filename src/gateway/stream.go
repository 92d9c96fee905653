package gateway

import (
	"context"
	"sync"
)

// lazyStream runs fn on the first call to Next and yields its result as a
// single fragment. It serves providers that cannot stream.
type lazyStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	fn     func(ctx context.Context) (string, error)

	started bool
	cur     string
	err     error
	once    sync.Once
}

func newLazyStream(ctx context.Context, fn func(ctx context.Context) (string, error)) *lazyStream {
	ctx, cancel := context.WithCancel(ctx)
	return &lazyStream{ctx: ctx, cancel: cancel, fn: fn}
}

func (s *lazyStream) Next() bool {
	if s.started {
		s.cur = ""
		return false
	}
	s.started = true
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}
	out, err := s.fn(s.ctx)
	if err != nil {
		s.err = err
		return false
	}
	s.cur = out
	return true
}

func (s *lazyStream) Fragment() string { return s.cur }
func (s *lazyStream) Err() error       { return s.err }

func (s *lazyStream) Close() error {
	s.once.Do(s.cancel)
	return nil
}
