package mock

import (
	"io"

	"github.com/fwojciec/notiondocx"
)

var _ notiondocx.Converter = (*Converter)(nil)

// Converter is a mock implementation of notiondocx.Converter.
type Converter struct {
	ConvertFn func(markup string, w io.Writer) (*notiondocx.Result, error)
}

func (c *Converter) Convert(markup string, w io.Writer) (*notiondocx.Result, error) {
	return c.ConvertFn(markup, w)
}
