package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/notiondocx"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Retriever notiondocx.Retriever
	Converter notiondocx.Converter

	// NewSink opens the output for a document path.
	NewSink func(path string) (notiondocx.Sink, error)
}

// ConvertCmd retrieves a page and writes it as a .docx file.
type ConvertCmd struct {
	URL    string
	Output string
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Loading %s\n", c.URL)
	markup, err := deps.Retriever.Retrieve(deps.Ctx, c.URL)
	if err != nil {
		return failed(err)
	}

	fmt.Fprintln(deps.Stdout, "Converting to .docx")
	sink, err := deps.NewSink(c.Output)
	if err != nil {
		return failed(err)
	}

	result, err := deps.Converter.Convert(markup, sink)
	if err != nil {
		_ = sink.Abort()
		return failed(err)
	}
	if err := sink.Commit(); err != nil {
		return failed(err)
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", c.Output)
	if result.ImageCount > 0 {
		fmt.Fprintf(deps.Stdout, "Embedded %d images\n", result.ImageCount)
	}
	if result.Placeholders > 0 {
		fmt.Fprintf(deps.Stdout, "%d images could not be loaded\n", result.Placeholders)
	}
	return nil
}

// failed formats a conversion error for the terminal. Application errors
// carry a user-facing message; anything else is shown as is.
func failed(err error) error {
	msg := err.Error()
	var e *notiondocx.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return fmt.Errorf("conversion failed: %s", msg)
}
