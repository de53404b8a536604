package notiondocx

import "context"

// Retriever loads a page in a controlled browser and returns its fully
// rendered markup, including lazily loaded content.
type Retriever interface {
	// Retrieve navigates to url, waits for the page content to render,
	// scrolls to trigger lazy loading, and returns the rendered HTML.
	// Failures are returned as ERETRIEVAL errors.
	Retrieve(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Retriever is no longer needed.
	Close() error
}
