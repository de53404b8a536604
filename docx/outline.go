package docx

import (
	"io"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/fwojciec/notiondocx"
)

// Entry is one body paragraph of a parsed document.
type Entry struct {
	// Style is the paragraph style ID, empty for plain body text.
	Style string

	// Text is the concatenated text of all runs.
	Text string

	// Runs holds the formatting of each text run. Space is set when the
	// run's text began with a space.
	Runs []notiondocx.Run

	// Images is the number of inline drawings in the paragraph.
	Images int

	// Width is the width in EMU of the first inline drawing.
	Width int64
}

// ReadOutline parses a .docx package and returns its body paragraphs in
// order.
func ReadOutline(r io.ReaderAt, size int64) ([]Entry, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, notiondocx.Wrapf(notiondocx.EINVALID, err, "failed to parse document")
	}

	var entries []Entry
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		entries = append(entries, readParagraph(para))
	}
	return entries, nil
}

func readParagraph(para *docx.Paragraph) Entry {
	var e Entry
	if para.Properties != nil && para.Properties.Style != nil {
		e.Style = para.Properties.Style.Val
	}

	var text strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var rt strings.Builder
		for _, rc := range run.Children {
			switch c := rc.(type) {
			case *docx.Text:
				rt.WriteString(c.Text)
			case *docx.Tab:
				rt.WriteString("\t")
			case *docx.BarterRabbet:
				rt.WriteString("\n")
			case *docx.Drawing:
				e.Images++
				if e.Width == 0 && c.Inline != nil && c.Inline.Extent != nil {
					e.Width = c.Inline.Extent.CX
				}
			}
		}
		if rt.Len() == 0 {
			continue
		}
		text.WriteString(rt.String())
		e.Runs = append(e.Runs, runFormat(run, rt.String()))
	}
	e.Text = text.String()
	return e
}

func runFormat(run *docx.Run, text string) notiondocx.Run {
	r := notiondocx.Run{
		Text:  strings.TrimLeft(text, " "),
		Space: strings.HasPrefix(text, " "),
	}
	props := run.RunProperties
	if props == nil {
		return r
	}
	r.Bold = props.Bold != nil
	r.Italic = props.Italic != nil
	r.Underline = props.Underline != nil && props.Underline.Val != "none"
	r.Monospace = props.Fonts != nil && props.Fonts.ASCII == MonospaceFont
	return r
}
