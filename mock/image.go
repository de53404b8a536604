package mock

import (
	"context"

	"github.com/fwojciec/notiondocx"
)

var _ notiondocx.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of notiondocx.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return f.FetchImageFn(ctx, url)
}
