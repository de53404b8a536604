package mock

import (
	"io"

	"github.com/fwojciec/notiondocx"
)

var _ notiondocx.DocumentBuilder = (*DocumentBuilder)(nil)

// DocumentBuilder is a mock implementation of notiondocx.DocumentBuilder.
// A nil function field makes the corresponding call a no-op.
type DocumentBuilder struct {
	AddHeadingFn   func(text string, level int)
	AddParagraphFn func(runs []notiondocx.Run)
	AddListFn      func(items []string, ordered bool)
	AddImageFn     func(data []byte) error
	AddCodeFn      func(text string)
	AddQuoteFn     func(text string)
	WriteToFn      func(w io.Writer) (int64, error)
}

func (b *DocumentBuilder) AddHeading(text string, level int) {
	if b.AddHeadingFn != nil {
		b.AddHeadingFn(text, level)
	}
}

func (b *DocumentBuilder) AddParagraph(runs []notiondocx.Run) {
	if b.AddParagraphFn != nil {
		b.AddParagraphFn(runs)
	}
}

func (b *DocumentBuilder) AddList(items []string, ordered bool) {
	if b.AddListFn != nil {
		b.AddListFn(items, ordered)
	}
}

func (b *DocumentBuilder) AddImage(data []byte) error {
	if b.AddImageFn != nil {
		return b.AddImageFn(data)
	}
	return nil
}

func (b *DocumentBuilder) AddCode(text string) {
	if b.AddCodeFn != nil {
		b.AddCodeFn(text)
	}
}

func (b *DocumentBuilder) AddQuote(text string) {
	if b.AddQuoteFn != nil {
		b.AddQuoteFn(text)
	}
}

func (b *DocumentBuilder) WriteTo(w io.Writer) (int64, error) {
	if b.WriteToFn != nil {
		return b.WriteToFn(w)
	}
	return 0, nil
}
