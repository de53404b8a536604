// Package slog provides logging decorators for notiondocx services.
package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/notiondocx"
)

// Ensure LoggingConverter implements notiondocx.Converter.
var _ notiondocx.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   notiondocx.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next notiondocx.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert logs the outcome of a conversion and delegates to the wrapped
// converter.
func (c *LoggingConverter) Convert(markup string, w io.Writer) (result *notiondocx.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"markup_bytes", len(markup),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"title", result.Title,
				"blocks", result.Blocks,
				"images", result.ImageCount,
				"placeholders", result.Placeholders,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", notiondocx.ErrorCode(err), "err", err)
		}
		c.logger.Info("convert", attrs...)
	}(time.Now())
	return c.next.Convert(markup, w)
}
