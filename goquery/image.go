package goquery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
)

// ImageSource returns the URL an image block should be fetched from.
// The node itself is used if it is an img, otherwise its first descendant
// img. It returns false when there is nothing to fetch: no img, a missing
// or empty src, an inline data: URI, or a scheme other than http(s).
// Protocol-relative sources are resolved to https.
func ImageSource(sel *goquery.Selection) (string, bool) {
	img := sel
	if goquery.NodeName(sel) != "img" {
		img = sel.Find("img").First()
	}
	if img.Length() == 0 {
		return "", false
	}

	src := strings.TrimSpace(img.AttrOr("src", ""))
	lower := strings.ToLower(src)
	switch {
	case src == "":
		return "", false
	case strings.HasPrefix(lower, "data:"):
		return "", false
	case strings.HasPrefix(src, "//"):
		return "https:" + src, true
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return src, true
	}
	return "", false
}

// imageResolver fetches image payloads one at a time, each with its own
// deadline.
type imageResolver struct {
	fetcher notiondocx.ImageFetcher
	timeout time.Duration
}

// resolve returns the image block for sel, or nil if the node should be
// skipped. A failed fetch yields an unresolved image with a placeholder.
func (r *imageResolver) resolve(sel *goquery.Selection) (*notiondocx.Image, string) {
	src, ok := ImageSource(sel)
	if !ok {
		return nil, ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := r.fetcher.FetchImage(ctx, src)
	if err == nil && len(data) == 0 {
		err = notiondocx.Errorf(notiondocx.EIMAGE, "empty image payload")
	}
	if err != nil {
		return &notiondocx.Image{Placeholder: placeholder(err)}, src
	}
	return &notiondocx.Image{Data: data}, src
}

// placeholder is the text left in the document where an image could not
// be embedded.
func placeholder(err error) string {
	return fmt.Sprintf("[Image failed to load: %s]", cause(err))
}

func cause(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var e *notiondocx.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
