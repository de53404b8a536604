package notiondocx

import "io"

// Result summarises a successful conversion. The document bytes themselves
// are written to the sink passed to Convert.
type Result struct {
	// Title is the page title, or empty when none was found.
	Title string

	// Blocks is the number of blocks appended to the document,
	// including the title heading and image placeholders.
	Blocks int

	// ImageCount is the number of images fetched and embedded.
	ImageCount int

	// Placeholders is the number of images replaced by a failure note.
	Placeholders int
}

// Converter turns rendered page markup into a Word document.
type Converter interface {
	// Convert parses markup, assembles the document, and writes it to w.
	// It either succeeds completely or returns an error: ENOTFOUND when the
	// page content root is missing (nothing is written) and ESERIALIZE
	// when writing to w fails.
	Convert(markup string, w io.Writer) (*Result, error)
}

// DocumentBuilder accumulates blocks into an in-memory document and
// serializes it once all blocks are appended.
// A DocumentBuilder is used for a single conversion and then discarded.
type DocumentBuilder interface {
	AddHeading(text string, level int)
	AddParagraph(runs []Run)
	AddList(items []string, ordered bool)

	// AddImage embeds a picture at the fixed display width.
	// Returns an error when the bytes are not an embeddable image.
	AddImage(data []byte) error

	AddCode(text string)
	AddQuote(text string)

	// WriteTo serializes the document.
	WriteTo(w io.Writer) (int64, error)
}
