package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"facscope/internal/input"
	"facscope/internal/logging"
	"facscope/internal/render"
)

// fetchFlags are shared by the chromedp and colly tools.
type fetchFlags struct {
	urls    string
	out     string
	ua      string
	timeout time.Duration
	verbose bool
}

func (f *fetchFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.urls, "urls", "urls.txt", "file with URLs to fetch (- for stdin)")
	fs.StringVar(&f.out, "out", "snapshots", "directory the HTML snapshots are written to")
	fs.StringVar(&f.ua, "ua", "", "User-Agent header")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "navigation timeout per page")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
}

func runChromedp(args []string) error {
	var f fetchFlags
	var wait time.Duration
	var headless bool
	fs := flag.NewFlagSet("chromedp", flag.ExitOnError)
	f.register(fs)
	fs.DurationVar(&wait, "wait", 10*time.Second, "time given to page scripts before the DOM is captured")
	fs.BoolVar(&headless, "headless", true, "run Chrome headless")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.FormatConsole, f.verbose)
	r := render.NewChromeRenderer(render.ChromeOptions{
		Wait:              wait,
		NavigationTimeout: f.timeout,
		Headless:          headless,
		UserAgent:         f.ua,
	}, logger)
	return f.run(r, logger)
}

func runColly(args []string) error {
	var f fetchFlags
	fs := flag.NewFlagSet("colly", flag.ExitOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.FormatConsole, f.verbose)
	return f.run(render.NewStaticRenderer(f.ua, f.timeout, logger), logger)
}

func (f *fetchFlags) run(r render.Renderer, logger zerolog.Logger) error {
	urls, err := input.ReadFile(f.urls, os.Stdin)
	if err != nil {
		return fmt.Errorf("read urls: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	saved, err := saveSnapshots(ctx, r, urls, f.out, logger)
	logger.Info().Int("saved", saved).Int("urls", len(urls)).Str("dir", f.out).Msg("snapshot: done")
	return err
}

// saveSnapshots fetches every URL and writes its HTML under dir using
// render.SnapshotName, so the extract command can read it back. Fetch
// failures are logged and skipped; write failures abort.
func saveSnapshots(ctx context.Context, r render.Renderer, urls []string, dir string, logger zerolog.Logger) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	saved := 0
	for _, u := range urls {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}
		html, err := r.Fetch(ctx, u)
		if err != nil {
			logger.Warn().Err(err).Str("url", u).Msg("snapshot: fetch failed")
			continue
		}
		path := filepath.Join(dir, render.SnapshotName(u))
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			return saved, fmt.Errorf("write html %s: %w", path, err)
		}
		saved++
		logger.Info().Str("url", u).Str("path", path).Msg("snapshot: saved")
	}
	return saved, nil
}
