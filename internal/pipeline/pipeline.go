// Package pipeline runs the scrape for a batch of faculty pages.
//
// URLs are processed strictly one at a time: render, extract, record the
// outcome, move on. A failure on one URL, including a panic inside rendering
// or extraction, becomes that URL's error outcome and the batch continues, so
// N input URLs always produce N outcomes in input order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"facscope/internal/aggregate"
	"facscope/internal/errors"
	"facscope/internal/extract"
	"facscope/internal/render"
)

// ProgressFunc is called after each URL with its 1-based index.
type ProgressFunc func(index, total int, o aggregate.Outcome)

// Runner processes URLs sequentially.
type Runner struct {
	renderer  render.Renderer
	extractor *extract.Extractor
	tabs      []string
	logger    zerolog.Logger
	progress  ProgressFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithProgress registers a callback invoked after each URL.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a Runner that extracts tabs from every page.
func NewRunner(renderer render.Renderer, extractor *extract.Extractor, tabs []string, opts ...Option) *Runner {
	r := &Runner{
		renderer:  renderer,
		extractor: extractor,
		tabs:      append([]string(nil), tabs...),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes urls in order and returns one outcome per URL.
func (r *Runner) Run(ctx context.Context, urls []string) []aggregate.Outcome {
	start := time.Now()
	r.logger.Info().Int("urls", len(urls)).Int("tabs", len(r.tabs)).Msg("starting batch")

	outcomes := make([]aggregate.Outcome, 0, len(urls))
	failed := 0
	for i, url := range urls {
		o := r.process(ctx, url)
		if o.Failed() {
			failed++
			r.logger.Warn().Err(o.Err).Str("url", url).Int("index", i+1).Msg("page failed")
		} else {
			r.logger.Info().
				Str("url", url).
				Str("faculty", o.Profile.FacultyName).
				Int("index", i+1).
				Int("total", len(urls)).
				Msg("page extracted")
		}
		outcomes = append(outcomes, o)
		if r.progress != nil {
			r.progress(i+1, len(urls), o)
		}
	}

	r.logger.Info().
		Int("urls", len(urls)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("batch complete")
	return outcomes
}

// RunInto processes urls and adds every outcome to agg.
func (r *Runner) RunInto(ctx context.Context, urls []string, agg *aggregate.Aggregator) {
	for _, o := range r.Run(ctx, urls) {
		agg.Add(o)
	}
}

func (r *Runner) process(ctx context.Context, url string) (o aggregate.Outcome) {
	o.URL = url
	defer func() {
		if p := recover(); p != nil {
			o.Profile = nil
			o.Err = errors.NewFetchError(url, fmt.Errorf("panic: %v", p))
		}
	}()

	if err := ctx.Err(); err != nil {
		o.Err = errors.NewFetchError(url, err)
		return o
	}

	html, err := r.renderer.Fetch(ctx, url)
	if err != nil {
		o.Err = err
		return o
	}
	profile := r.extractor.Profile(url, html, r.tabs)
	o.Profile = &profile
	return o
}
