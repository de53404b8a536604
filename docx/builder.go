package docx

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
	"github.com/fwojciec/notiondocx"
)

// Ensure Builder implements notiondocx.DocumentBuilder.
var _ notiondocx.DocumentBuilder = (*Builder)(nil)

// Paragraph style IDs. The default template defines none of them, so the
// builder also applies direct formatting; the IDs keep the document's
// structure visible to readers and to ReadOutline.
const (
	StyleTitle      = "Title"
	StyleHeading1   = "Heading1"
	StyleHeading2   = "Heading2"
	StyleHeading3   = "Heading3"
	StyleListBullet = "ListBullet"
	StyleListNumber = "ListNumber"
	StyleQuote      = "Quote"
	StyleCode       = "HTMLPreformatted"
)

// MonospaceFont is used for code blocks and inline code.
const MonospaceFont = "Consolas"

// Font sizes in half-points.
const (
	sizeTitle      = "56"
	sizeHeading1   = "40"
	sizeHeading2   = "32"
	sizeHeading3   = "28"
	sizeInlineCode = "20"
	sizeCodeBlock  = "18"
)

// Indentation in twentieths of a point.
const (
	indentBlock   = 720
	indentHanging = 360
)

const (
	bulletPrefix = "• "
	quoteColor   = "595959"
	codeShading  = "F2F2F2"
)

// Builder assembles a single .docx document in memory.
type Builder struct {
	doc *docx.Docx
}

// NewBuilder returns an empty document using the default theme.
func NewBuilder() *Builder {
	return &Builder{doc: docx.New().WithDefaultTheme()}
}

// NewDocumentBuilder is NewBuilder typed for use as a converter's builder
// factory.
func NewDocumentBuilder() notiondocx.DocumentBuilder {
	return NewBuilder()
}

// AddHeading appends a heading. Level 0 is the page title; levels above 3
// are clamped to 3.
func (b *Builder) AddHeading(text string, level int) {
	style, size := headingStyle(level)
	p := b.doc.AddParagraph().Style(style)
	addText(p, text).Bold().Size(size)
}

func headingStyle(level int) (string, string) {
	switch {
	case level <= notiondocx.TitleLevel:
		return StyleTitle, sizeTitle
	case level == 1:
		return StyleHeading1, sizeHeading1
	case level == 2:
		return StyleHeading2, sizeHeading2
	default:
		return StyleHeading3, sizeHeading3
	}
}

// AddParagraph appends a body paragraph with one document run per run.
func (b *Builder) AddParagraph(runs []notiondocx.Run) {
	p := b.doc.AddParagraph()
	for i, r := range runs {
		text := r.Text
		if r.Space && i > 0 {
			text = " " + text
		}
		run := addText(p, text)
		if r.Bold {
			run.Bold()
		}
		if r.Italic {
			run.Italic()
		}
		if r.Underline {
			run.Underline("single")
		}
		if r.Monospace {
			run.Font(MonospaceFont, MonospaceFont, MonospaceFont, "").Size(sizeInlineCode)
		}
	}
}

// AddList appends one paragraph per item. Bulleted items are prefixed with
// a bullet, numbered items with their 1-based position.
func (b *Builder) AddList(items []string, ordered bool) {
	style := StyleListBullet
	if ordered {
		style = StyleListNumber
	}
	for i, item := range items {
		prefix := bulletPrefix
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		p := b.doc.AddParagraph().Style(style)
		p.Properties.Ind = &docx.Ind{Left: indentBlock, Hanging: indentHanging}
		addText(p, prefix+item)
	}
}

// AddImage embeds an image scaled to ImageWidthInches. Formats Word cannot
// display are converted to PNG first. On failure the document is left
// unchanged.
func (b *Builder) AddImage(data []byte) error {
	data, err := normalizeImage(data)
	if err != nil {
		return err
	}

	p := b.doc.AddParagraph()
	run, err := p.AddInlineDrawing(data)
	if err != nil {
		b.dropLast()
		return notiondocx.Wrapf(notiondocx.EIMAGE, err, "failed to embed image")
	}
	scaleDrawing(run, notiondocx.ImageWidthInches*emuPerInch)
	return nil
}

// AddCode appends a code block as a single shaded monospace paragraph.
// Line breaks in text are kept.
func (b *Builder) AddCode(text string) {
	p := b.doc.AddParagraph().Style(StyleCode)
	addText(p, text).
		Font(MonospaceFont, MonospaceFont, MonospaceFont, "").
		Size(sizeCodeBlock).
		Shade("clear", "auto", codeShading)
}

// AddQuote appends an indented italic paragraph.
func (b *Builder) AddQuote(text string) {
	p := b.doc.AddParagraph().Style(StyleQuote)
	p.Properties.Ind = &docx.Ind{Left: indentBlock}
	addText(p, text).Italic().Color(quoteColor)
}

// WriteTo serializes the document as a .docx package.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := b.doc.WriteTo(cw); err != nil {
		return cw.n, err
	}
	// The archive is closed after the library returns, so write errors
	// from the final flush only show up here.
	return cw.n, cw.err
}

func (b *Builder) dropLast() {
	items := b.doc.Document.Body.Items
	if len(items) > 0 {
		b.doc.Document.Body.Items = items[:len(items)-1]
	}
}

// addText adds text to p, preserving leading and trailing spaces.
func addText(p *docx.Paragraph, text string) *docx.Run {
	run := p.AddText(text)
	for _, c := range run.Children {
		if t, ok := c.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	return run
}

// countingWriter records bytes written and the first write error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}
