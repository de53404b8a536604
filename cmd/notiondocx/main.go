package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/notiondocx"
	"github.com/fwojciec/notiondocx/docx"
	"github.com/fwojciec/notiondocx/fs"
	"github.com/fwojciec/notiondocx/goquery"
	ndhttp "github.com/fwojciec/notiondocx/http"
	"github.com/fwojciec/notiondocx/rod"
	ndslog "github.com/fwojciec/notiondocx/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewRetriever overrides browser construction. Used by tests.
	NewRetriever func(timeout time.Duration, showBrowser bool) notiondocx.Retriever

	// Converter overrides the markup converter. Used by tests.
	Converter notiondocx.Converter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("notiondocx"),
		kong.Description("Convert a public Notion page to a Word document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if !strings.HasPrefix(cli.URL, "http") {
		return fmt.Errorf("URL must start with http or https")
	}
	if cli.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive number of milliseconds")
	}
	timeout := time.Duration(cli.Timeout) * time.Millisecond

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		NewSink: func(path string) (notiondocx.Sink, error) {
			return fs.NewFileSink(path)
		},
	}

	newRetriever := m.NewRetriever
	if newRetriever == nil {
		newRetriever = func(timeout time.Duration, showBrowser bool) notiondocx.Retriever {
			return rod.NewRetriever(rod.WithTimeout(timeout), rod.WithHeadless(!showBrowser))
		}
	}
	retriever := newRetriever(timeout, cli.ShowBrowser)
	defer retriever.Close()
	deps.Retriever = rod.NewLoggingRetriever(retriever, logger)

	converter := m.Converter
	if converter == nil {
		images := ndslog.NewLoggingImageFetcher(ndhttp.NewImageFetcher(), logger)
		converter = goquery.NewConverter(images, docx.NewDocumentBuilder, goquery.WithLogger(logger))
	}
	deps.Converter = ndslog.NewLoggingConverter(converter, logger)

	cmd := &ConvertCmd{
		URL:    cli.URL,
		Output: cli.Output,
	}
	return cmd.Run(deps)
}
