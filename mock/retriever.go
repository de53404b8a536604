package mock

import (
	"context"

	"github.com/fwojciec/notiondocx"
)

var _ notiondocx.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of notiondocx.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, url string) (string, error)
	CloseFn    func() error
}

func (r *Retriever) Retrieve(ctx context.Context, url string) (string, error) {
	return r.RetrieveFn(ctx, url)
}

func (r *Retriever) Close() error {
	return r.CloseFn()
}
