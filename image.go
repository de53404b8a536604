package notiondocx

import (
	"context"
	"time"
)

// ImageFetchTimeout bounds a single image download.
const ImageFetchTimeout = 10 * time.Second

// ImageWidthInches is the display width of embedded images.
const ImageWidthInches = 5

// ImageFetcher downloads remote image bytes.
type ImageFetcher interface {
	// FetchImage returns the body of a successful (HTTP 200) response.
	// Failures are returned as EIMAGE errors describing the cause.
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
