package render

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"facscope/internal/errors"
)

// ChromeOptions configures a ChromeRenderer.
type ChromeOptions struct {
	// Wait is the fixed time given to client-side scripts after the page has
	// loaded. The DOM is captured when it elapses, whatever its state.
	Wait time.Duration
	// NavigationTimeout bounds navigation and DOM capture.
	NavigationTimeout time.Duration
	Headless          bool
	UserAgent         string
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
}

// DefaultChromeOptions returns the options used when none are configured.
func DefaultChromeOptions() ChromeOptions {
	return ChromeOptions{
		Wait:              10 * time.Second,
		NavigationTimeout: 30 * time.Second,
		Headless:          true,
	}
}

// ChromeRenderer renders pages in headless Chrome. Each Fetch starts its own
// browser and shuts it down before returning, so at most one session is live
// per caller.
type ChromeRenderer struct {
	opts   ChromeOptions
	logger zerolog.Logger
}

// NewChromeRenderer creates a ChromeRenderer.
func NewChromeRenderer(opts ChromeOptions, logger zerolog.Logger) *ChromeRenderer {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultChromeOptions().NavigationTimeout
	}
	if opts.Wait < 0 {
		opts.Wait = 0
	}
	return &ChromeRenderer{opts: opts, logger: logger}
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", r.opts.Headless))
	if r.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.opts.UserAgent))
	}
	if r.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ExecPath))
	}
	return opts
}

// Fetch navigates to url, waits the configured settle time and returns the
// document's outer HTML.
func (r *ChromeRenderer) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug().Str("url", url).Msgf(format, args...)
		}),
	)
	defer cancelBrowser()

	// Start the browser on the long-lived context; running the first action
	// under a timeout context would tie the browser's lifetime to it.
	if err := chromedp.Run(browserCtx); err != nil {
		return "", errors.NewFetchError(url, err)
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, r.opts.NavigationTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		if !navigationTimedOut(err, browserCtx) {
			return "", errors.NewFetchError(url, err)
		}
		// The load event never fired; capture whatever has rendered so far.
		r.logger.Warn().
			Str("url", url).
			Dur("timeout", r.opts.NavigationTimeout).
			Msg("chrome: navigation timed out, capturing partial page")
	}

	if r.opts.Wait > 0 {
		if err := chromedp.Run(browserCtx, chromedp.Sleep(r.opts.Wait)); err != nil {
			return "", errors.NewFetchError(url, err)
		}
	}

	captureCtx, cancelCapture := context.WithTimeout(browserCtx, r.opts.NavigationTimeout)
	defer cancelCapture()
	var html string
	if err := chromedp.Run(captureCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", errors.NewFetchError(url, err)
	}

	r.logger.Debug().
		Str("url", url).
		Int("bytes", len(html)).
		Dur("duration", time.Since(start)).
		Msg("chrome: captured page")
	return html, nil
}

// navigationTimedOut reports whether err is the navigation deadline expiring
// while the browser itself is still live. Cancellation of the caller's context
// and real navigation errors are not timeouts.
func navigationTimedOut(err error, browserCtx context.Context) bool {
	return stderrors.Is(err, context.DeadlineExceeded) && browserCtx.Err() == nil
}
