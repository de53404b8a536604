package notiondocx

import "io"

// DefaultOutputName is the file name used for a converted document when
// the caller does not choose one.
const DefaultOutputName = "notion_export.docx"

// Sink receives document bytes with atomic semantics.
// Write goes to a temporary location; Commit makes the document visible;
// Abort discards it.
type Sink interface {
	io.Writer
	Commit() error
	Abort() error
}
