package goquery

import (
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
)

// Ensure Converter implements notiondocx.Converter.
var _ notiondocx.Converter = (*Converter)(nil)

// ContentRootSelector matches the element that holds a rendered page body.
const ContentRootSelector = "div.notion-page-content"

// TitleSelectors are tried in order; the first element found holds the
// page title.
var TitleSelectors = []string{
	"div.notion-page-block h1",
	"h1.notion-header-block",
	"div[data-block-id] h1",
}

// Option configures a Converter.
type Option func(*Converter)

// WithMaxDepth sets how deep the walker descends into nested containers.
func WithMaxDepth(n int) Option {
	return func(c *Converter) {
		if n >= 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for per-block debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Converter turns rendered page markup into a document.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	images     notiondocx.ImageFetcher
	newBuilder func() notiondocx.DocumentBuilder
	maxDepth   int
	logger     *slog.Logger
}

// NewConverter creates a Converter that fetches images through images and
// assembles each document in a fresh builder from newBuilder.
func NewConverter(images notiondocx.ImageFetcher, newBuilder func() notiondocx.DocumentBuilder, opts ...Option) *Converter {
	c := &Converter{
		images:     images,
		newBuilder: newBuilder,
		maxDepth:   DefaultMaxDepth,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert parses markup, renders the page content into a new document and
// writes it to w. Nothing is written when the content root is missing.
func (c *Converter) Convert(markup string, w io.Writer) (*notiondocx.Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, notiondocx.Wrapf(notiondocx.EINVALID, err, "failed to parse page markup")
	}

	root := doc.Find(ContentRootSelector).First()
	if root.Length() == 0 {
		return nil, notiondocx.Errorf(notiondocx.ENOTFOUND,
			"content root not found: the page may not be public or did not finish rendering")
	}

	conv := &conversion{
		builder:  c.newBuilder(),
		images:   &imageResolver{fetcher: c.images, timeout: notiondocx.ImageFetchTimeout},
		logger:   c.logger,
		maxDepth: c.maxDepth,
	}

	if title := Title(doc.Selection); title != "" {
		conv.result.Title = title
		conv.append(&notiondocx.Heading{Level: notiondocx.TitleLevel, Text: title})
	}

	conv.walk(root, 0)

	if _, err := conv.builder.WriteTo(w); err != nil {
		return nil, notiondocx.Wrapf(notiondocx.ESERIALIZE, err, "failed to write document")
	}
	return &conv.result, nil
}

// Title returns the page title, or "" if none is found. Only the first
// matching selector is considered, even when its text is empty.
func Title(sel *goquery.Selection) string {
	for _, s := range TitleSelectors {
		if match := sel.Find(s).First(); match.Length() > 0 {
			return normalizedText(match)
		}
	}
	return ""
}
