// Package http provides the HTTP side of notiondocx: an image fetcher used
// while assembling documents and the server behind the browser UI.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/notiondocx"
	"github.com/h2non/filetype"
)

// DefaultFetchTimeout bounds a single image request.
// Kept consistent with notiondocx.ImageFetchTimeout.
const DefaultFetchTimeout = notiondocx.ImageFetchTimeout

// DefaultMaxImageBytes caps the size of a downloaded image.
const DefaultMaxImageBytes = 20 << 20

// UserAgent is sent with every image request.
const UserAgent = "Mozilla/5.0 (compatible; notiondocx)"

// Ensure ImageFetcher implements notiondocx.ImageFetcher at compile time.
var _ notiondocx.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads images over plain HTTP.
type ImageFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures an ImageFetcher.
type Option func(*ImageFetcher)

// WithTimeout sets the timeout for image requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *ImageFetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest image body that will be accepted.
func WithMaxBytes(n int64) Option {
	return func(f *ImageFetcher) {
		f.maxBytes = n
	}
}

// NewImageFetcher creates a new ImageFetcher.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	f := &ImageFetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchImage returns the body of url if the server answers 200 with an
// image payload.
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, notiondocx.Wrapf(notiondocx.EIMAGE, err, "invalid image url")
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, notiondocx.Wrapf(notiondocx.EIMAGE, err, "failed to fetch image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, notiondocx.Errorf(notiondocx.EIMAGE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, notiondocx.Wrapf(notiondocx.EIMAGE, err, "failed to read image")
	}
	if int64(len(body)) > f.maxBytes {
		return nil, notiondocx.Errorf(notiondocx.EIMAGE, "image exceeds %d bytes", f.maxBytes)
	}
	if !filetype.IsImage(body) {
		return nil, notiondocx.Errorf(notiondocx.EIMAGE, "response is not an image (%s)", contentType(resp))
	}

	return body, nil
}

func contentType(resp *http.Response) string {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "no content type"
}
