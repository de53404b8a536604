package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/notiondocx"
	"github.com/fwojciec/notiondocx/docx"
	"github.com/fwojciec/notiondocx/goquery"
	ndhttp "github.com/fwojciec/notiondocx/http"
	"github.com/fwojciec/notiondocx/rod"
	ndslog "github.com/fwojciec/notiondocx/slog"
	"github.com/go-rod/rod/lib/launcher"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight conversions may finish after
// a shutdown signal.
const shutdownTimeout = 10 * time.Second

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

// CLI defines the server configuration. Every flag has an environment
// variable fallback.
type CLI struct {
	Addr      string  `default:":5000" env:"NOTIONDOCX_ADDR" help:"Listen address"`
	Rate      float64 `default:"0.2" env:"NOTIONDOCX_RATE" help:"Conversions per second allowed per client (0 disables limiting)"`
	LogFormat string  `default:"text" enum:"text,json" env:"NOTIONDOCX_LOG_FORMAT" help:"Log format (text or json)"`
	Open      bool    `help:"Open the UI in the default browser on start"`
}

// Main represents the program.
type Main struct {
	// Listening is called with the bound address once the server accepts
	// connections.
	Listening func(addr string)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses flags, starts the server, and blocks until ctx is canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("notiondocx-server"),
		kong.Description("Serve the Notion to Word converter over HTTP"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	log := newLogger(cli.LogFormat, stderr)

	images := ndslog.NewLoggingImageFetcher(ndhttp.NewImageFetcher(), log)
	converter := ndslog.NewLoggingConverter(
		goquery.NewConverter(images, docx.NewDocumentBuilder, goquery.WithLogger(log)),
		log,
	)
	newRetriever := func(timeout time.Duration, showBrowser bool) notiondocx.Retriever {
		r := rod.NewRetriever(rod.WithTimeout(timeout), rod.WithHeadless(!showBrowser))
		return rod.NewLoggingRetriever(r, log)
	}
	srv := ndhttp.NewServer(converter, newRetriever, ndhttp.NewClientLimiter(cli.Rate), log)

	ln, err := net.Listen("tcp", cli.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cli.Addr, err)
	}

	httpServer := &http.Server{
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	addr := ln.Addr().String()
	log.Info("starting notiondocx-server", "addr", addr, "rate", cli.Rate)
	if m.Listening != nil {
		m.Listening(addr)
	}
	if cli.Open {
		launcher.Open(uiURL(ln.Addr()))
	}

	return g.Wait()
}

func newLogger(format string, w io.Writer) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// uiURL returns a browsable URL for a listener address, replacing an
// unspecified host with localhost.
func uiURL(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || tcp.IP == nil || tcp.IP.IsUnspecified() {
		port := 0
		if ok {
			port = tcp.Port
		}
		return fmt.Sprintf("http://localhost:%d/", port)
	}
	return "http://" + tcp.String() + "/"
}
