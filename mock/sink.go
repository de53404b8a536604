package mock

import "github.com/fwojciec/notiondocx"

var _ notiondocx.Sink = (*Sink)(nil)

// Sink is a mock implementation of notiondocx.Sink.
type Sink struct {
	WriteFn  func(p []byte) (int, error)
	CommitFn func() error
	AbortFn  func() error
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.WriteFn(p)
}

func (s *Sink) Commit() error {
	return s.CommitFn()
}

func (s *Sink) Abort() error {
	return s.AbortFn()
}
