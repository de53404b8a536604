package notiondocx

import "strings"

// BlockKind identifies what a node of the page content represents.
type BlockKind int

// BlockKind constants. BlockNone means the node produces no output.
const (
	BlockNone BlockKind = iota
	BlockHeading
	BlockParagraph
	BlockList
	BlockImage
	BlockCode
	BlockQuote
	BlockContainer
)

// String returns the lowercase name of the kind.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	case BlockImage:
		return "image"
	case BlockCode:
		return "code"
	case BlockQuote:
		return "quote"
	case BlockContainer:
		return "container"
	default:
		return "none"
	}
}

// TitleLevel is the heading level reserved for the page title.
// Block classification only ever produces levels 1 through 3.
const TitleLevel = 0

// Block is one structural unit of output.
type Block interface {
	Kind() BlockKind
}

// Heading is a section heading. Level is TitleLevel for the page title
// and 1..3 otherwise.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of styled text.
type Paragraph struct {
	Runs []Run
}

// List is a bulleted or numbered list of plain-text items.
type List struct {
	Ordered bool
	Items   []string
}

// Image is an embedded picture. When the picture could not be fetched, Data
// is nil and Placeholder explains why.
type Image struct {
	Data        []byte
	Placeholder string
}

// CodeBlock is preformatted text rendered in a monospace font.
type CodeBlock struct {
	Text string
}

// Quote is a block quotation.
type Quote struct {
	Text string
}

func (*Heading) Kind() BlockKind   { return BlockHeading }
func (*Paragraph) Kind() BlockKind { return BlockParagraph }
func (*List) Kind() BlockKind      { return BlockList }
func (*Image) Kind() BlockKind     { return BlockImage }
func (*CodeBlock) Kind() BlockKind { return BlockCode }
func (*Quote) Kind() BlockKind     { return BlockQuote }

// Resolved reports whether the image bytes were fetched.
func (i *Image) Resolved() bool {
	return i.Data != nil
}

// Text returns the paragraph text, joining runs the way they are rendered.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for i, r := range p.Runs {
		if i > 0 && r.Space {
			b.WriteByte(' ')
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Run is a contiguous piece of text with a single set of style flags.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Monospace bool

	// Space is set when the source separated this run from the previous one
	// with whitespace. Run text itself is always trimmed.
	Space bool
}
