package http_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/notiondocx"
	notionhttp "github.com/fwojciec/notiondocx/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	t.Run("returns image body from server", func(t *testing.T) {
		t.Parallel()

		img := pngBytes(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, notionhttp.UserAgent, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(img)
		}))
		defer server.Close()

		fetcher := notionhttp.NewImageFetcher()

		data, err := fetcher.FetchImage(context.Background(), server.URL+"/cat.png")
		require.NoError(t, err)
		assert.Equal(t, img, data)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write(pngBytes(t))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := notionhttp.NewImageFetcher(notionhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.FetchImage(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, notiondocx.EIMAGE, notiondocx.ErrorCode(err))
	})

	t.Run("respects context deadline", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write(pngBytes(t))
		}))
		defer server.Close()

		fetcher := notionhttp.NewImageFetcher()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := fetcher.FetchImage(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := notionhttp.NewImageFetcher(notionhttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.FetchImage(context.Background(), "http://non-existent-host.invalid/a.png")
		require.Error(t, err)
		assert.Equal(t, notiondocx.EIMAGE, notiondocx.ErrorCode(err))
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := notionhttp.NewImageFetcher()

		_, err := fetcher.FetchImage(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, notiondocx.EIMAGE, notiondocx.ErrorCode(err))
		assert.Contains(t, notiondocx.ErrorMessage(err), "HTTP 404")
	})

	t.Run("rejects a body that is not an image", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>sign in</html>"))
		}))
		defer server.Close()

		fetcher := notionhttp.NewImageFetcher()

		_, err := fetcher.FetchImage(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, "response is not an image (text/html)", notiondocx.ErrorMessage(err))
	})

	t.Run("rejects images over the size limit", func(t *testing.T) {
		t.Parallel()

		img := pngBytes(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(img)
		}))
		defer server.Close()

		fetcher := notionhttp.NewImageFetcher(notionhttp.WithMaxBytes(int64(len(img) - 1)))

		_, err := fetcher.FetchImage(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, notiondocx.ErrorMessage(err), "image exceeds")
	})
}
