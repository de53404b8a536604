// Package notiondocx converts a rendered public Notion page into a Word
// (.docx) document. It classifies the blocks of the page content, extracts
// their text and inline formatting, fetches images, and assembles the result
// into a document that is written to a caller-supplied sink.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, docx/, rod/).
package notiondocx
