package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/notiondocx"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for the page-readiness heuristics.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMinWait     = 60 * time.Second
	DefaultSettle      = 3 * time.Second
	DefaultScrollPause = 500 * time.Millisecond
	DefaultMaxScrolls  = 50
)

// Selectors used to decide that a page has rendered.
const (
	ContentSelector  = ".notion-page-content"
	FallbackSelector = `[class*="notion"]`
)

// Ensure Retriever implements notiondocx.Retriever at compile time.
var _ notiondocx.Retriever = (*Retriever)(nil)

// Retriever loads a page in Chrome and returns its markup once the page
// content has rendered and lazy-loaded blocks have been scrolled into view.
//
// The browser is launched on the first call to Retrieve. Close must be
// called when the Retriever is no longer needed.
type Retriever struct {
	headless    bool
	bin         string
	timeout     time.Duration
	minWait     time.Duration
	settle      time.Duration
	scrollPause time.Duration
	maxScrolls  int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithHeadless controls whether the browser window is hidden.
// Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Retriever) {
		r.headless = headless
	}
}

// WithBin sets the path of the browser executable. By default rod finds
// or downloads one.
func WithBin(path string) Option {
	return func(r *Retriever) {
		r.bin = path
	}
}

// WithTimeout sets the navigation timeout.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Retriever) {
		r.timeout = d
	}
}

// WithMinWait sets the lower bound of the wait for page content.
// The effective wait is the larger of this and the navigation timeout.
func WithMinWait(d time.Duration) Option {
	return func(r *Retriever) {
		r.minWait = d
	}
}

// WithSettle sets the pause before and after scrolling.
func WithSettle(d time.Duration) Option {
	return func(r *Retriever) {
		r.settle = d
	}
}

// WithScrollPause sets the pause between scroll steps.
func WithScrollPause(d time.Duration) Option {
	return func(r *Retriever) {
		r.scrollPause = d
	}
}

// WithMaxScrolls caps the number of scroll steps for pages that keep
// growing.
func WithMaxScrolls(n int) Option {
	return func(r *Retriever) {
		r.maxScrolls = n
	}
}

// NewRetriever creates a Retriever. No browser is started until the first
// call to Retrieve.
func NewRetriever(opts ...Option) *Retriever {
	r := &Retriever{
		headless:    true,
		timeout:     DefaultTimeout,
		minWait:     DefaultMinWait,
		settle:      DefaultSettle,
		scrollPause: DefaultScrollPause,
		maxScrolls:  DefaultMaxScrolls,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve navigates to url and returns the rendered HTML.
func (r *Retriever) Retrieve(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "retrieval canceled")
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "failed to start browser")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "failed to open page")
	}
	defer page.Close()

	page = page.Context(ctx)

	nav := page.Timeout(r.timeout)
	err = nav.Navigate(url)
	if err == nil {
		err = nav.WaitLoad()
	}
	nav.CancelTimeout()
	if err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "failed to load %s", url)
	}

	wait := max(r.minWait, r.timeout)
	if err := waitForContent(page, wait); err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "page content did not appear within %s", wait)
	}

	if err := sleep(ctx, r.settle); err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "retrieval canceled")
	}
	if err := r.scrollToBottom(ctx, page); err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "failed to scroll page")
	}
	if err := sleep(ctx, r.settle); err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "retrieval canceled")
	}

	html, err := page.HTML()
	if err != nil {
		return "", notiondocx.Wrapf(notiondocx.ERETRIEVAL, err, "failed to read page")
	}
	return html, nil
}

// waitForContent waits for the page body, falling back to any element
// with a notion class when the body never appears.
func waitForContent(page *rod.Page, wait time.Duration) error {
	p := page.Timeout(wait)
	_, err := p.Element(ContentSelector)
	p.CancelTimeout()
	if err == nil {
		return nil
	}
	if page.GetContext().Err() != nil {
		return err
	}

	p = page.Timeout(wait)
	_, err = p.Element(FallbackSelector)
	p.CancelTimeout()
	return err
}

// scrollToBottom scrolls until the document height stops changing.
func (r *Retriever) scrollToBottom(ctx context.Context, page *rod.Page) error {
	last, err := scrollHeight(page)
	if err != nil {
		return err
	}
	for i := 0; i < r.maxScrolls; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}
		if err := sleep(ctx, r.scrollPause); err != nil {
			return err
		}
		height, err := scrollHeight(page)
		if err != nil {
			return err
		}
		if height == last {
			return nil
		}
		last = height
	}
	return nil
}

func scrollHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ensureBrowser launches the browser on first use.
func (r *Retriever) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed.Load() {
		return nil, errors.New("retriever is closed")
	}
	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("window-size", "1920,1080").
		NoSandbox(true).
		Leakless(true).
		Headless(r.headless)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close releases browser resources. Close is safe to call multiple times
// and on a Retriever that never launched a browser.
func (r *Retriever) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 when no
// browser is running.
// This method exists for testing purposes to verify proper cleanup.
func (r *Retriever) LauncherPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.launcher == nil {
		return 0
	}
	return r.launcher.PID()
}
