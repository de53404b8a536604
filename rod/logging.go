package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/notiondocx"
)

// Ensure LoggingRetriever implements notiondocx.Retriever.
var _ notiondocx.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with logging.
type LoggingRetriever struct {
	next   notiondocx.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next notiondocx.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Retrieve logs the URL being retrieved and delegates to the wrapped retriever.
func (r *LoggingRetriever) Retrieve(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("retrieve",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Retrieve(ctx, url)
}

// Close delegates to the wrapped retriever.
func (r *LoggingRetriever) Close() error {
	return r.next.Close()
}
