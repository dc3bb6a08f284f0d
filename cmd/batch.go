package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"facscope/internal/aggregate"
	"facscope/internal/config"
	"facscope/internal/errors"
	"facscope/internal/expertise"
	"facscope/internal/export"
	"facscope/internal/extract"
	"facscope/internal/input"
	"facscope/internal/normalize"
	"facscope/internal/pipeline"
	"facscope/internal/render"
)

// errNoInput is reported before any fetch when a batch has nothing to do.
var errNoInput = errors.NewValidationError("input", "Please enter at least one URL and one tab href")

// batchFlags are the flags shared by scrape and extract.
type batchFlags struct {
	urlsFile     string
	tabsFile     string
	tabs         []string
	catalog      string
	mode         string
	nameSelector string
	noNormalize  bool
	outDir       string
	formats      []string
	feedURL      string
}

func addBatchFlags(cmd *cobra.Command, f *batchFlags) {
	cmd.Flags().StringVar(&f.urlsFile, "urls", "", "File with one profile URL per line (- for stdin)")
	cmd.Flags().StringVar(&f.tabsFile, "tabs", "", "File with one tab href per line (e.g. #tab_default_4)")
	cmd.Flags().StringArrayVar(&f.tabs, "tab", nil, "Tab href to extract (repeatable)")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "Subject catalog to match against (default from config, or All)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Extraction mode: flat or table (default flat)")
	cmd.Flags().StringVar(&f.nameSelector, "name-selector", "", "CSS selector of the faculty name heading (default h3.facDet1)")
	cmd.Flags().BoolVar(&f.noNormalize, "no-normalize", false, "Keep extracted text as-is instead of normalizing it")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Output directory (default .)")
	cmd.Flags().StringSliceVar(&f.formats, "format", nil, "Output formats: csv, json, md, sqlite, pdf (default csv)")
	cmd.Flags().StringVar(&f.feedURL, "feed", "", "RSS/Atom/JSON feed whose item links are added to the URL list")
}

// batchSettings is the resolved configuration of one batch: flags that
// were set explicitly win over the config file.
type batchSettings struct {
	urls      []string
	tabs      []string
	catalog   expertise.Catalog
	mode      extract.Mode
	selector  string
	normalize bool
	outDir    string
	formats   []export.Format
}

func (f *batchFlags) resolve(ctx context.Context, cmd *cobra.Command, c *config.Config) (batchSettings, error) {
	var s batchSettings
	var err error

	if s.urls, err = f.readURLs(ctx, cmd.InOrStdin()); err != nil {
		return s, err
	}
	if s.tabs, err = f.readTabs(cmd.InOrStdin(), c); err != nil {
		return s, err
	}
	if len(s.urls) == 0 || len(s.tabs) == 0 {
		return s, errNoInput
	}

	reg, err := c.Registry()
	if err != nil {
		return s, err
	}
	if s.catalog, err = reg.Lookup(pick(cmd, "catalog", f.catalog, c.Catalog)); err != nil {
		return s, err
	}
	if s.mode, err = extract.ParseMode(pick(cmd, "mode", f.mode, c.Extract.Mode)); err != nil {
		return s, err
	}
	s.selector = pick(cmd, "name-selector", f.nameSelector, c.Extract.NameSelector)
	s.normalize = c.NormalizeEnabled()
	if cmd.Flags().Changed("no-normalize") {
		s.normalize = !f.noNormalize
	}
	s.outDir = pick(cmd, "out", f.outDir, c.Output.Dir)

	formats := c.Output.Formats
	if cmd.Flags().Changed("format") {
		formats = f.formats
	}
	if s.formats, err = export.ParseFormats(config.SplitFormats(formats)); err != nil {
		return s, err
	}
	return s, nil
}

func (f *batchFlags) readURLs(ctx context.Context, stdin io.Reader) ([]string, error) {
	var urls []string
	if f.urlsFile != "" {
		lines, err := input.ReadFile(f.urlsFile, stdin)
		if err != nil {
			return nil, fmt.Errorf("reading URLs: %w", err)
		}
		urls = append(urls, lines...)
	}
	if f.feedURL != "" {
		links, err := input.FromFeed(ctx, f.feedURL)
		if err != nil {
			return nil, fmt.Errorf("reading feed: %w", err)
		}
		urls = append(urls, links...)
	}
	return urls, nil
}

func (f *batchFlags) readTabs(stdin io.Reader, c *config.Config) ([]string, error) {
	var tabs []string
	if f.tabsFile != "" {
		lines, err := input.ReadFile(f.tabsFile, stdin)
		if err != nil {
			return nil, fmt.Errorf("reading tabs: %w", err)
		}
		tabs = append(tabs, lines...)
	}
	for _, t := range f.tabs {
		tabs = append(tabs, input.ParseLines(t)...)
	}
	if len(tabs) == 0 {
		tabs = append(tabs, c.Tabs...)
	}
	return tabs, nil
}

// pick returns the flag value when the flag was set, else the fallback.
func pick(cmd *cobra.Command, name, flagValue, fallback string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return fallback
}

// runBatch resolves the batch, runs it through renderer and writes the
// outputs. Ctrl-C cancels the page in flight; the remaining URLs are
// recorded as errors and the outputs are still written.
func runBatch(cmd *cobra.Command, f *batchFlags, newRenderer func() (render.Renderer, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := f.resolve(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	var norm extract.Normalizer
	if s.normalize {
		n, err := normalize.Default()
		if err != nil {
			return fmt.Errorf("loading normalizer: %w", err)
		}
		norm = n
	}
	extractor := extract.New(norm, extract.WithMode(s.mode), extract.WithNameSelector(s.selector))

	logger.Info().
		Int("urls", len(s.urls)).
		Strs("tabs", s.tabs).
		Str("catalog", s.catalog.Name).
		Str("mode", string(s.mode)).
		Msg("starting scrape")

	runner := pipeline.NewRunner(renderer, extractor, s.tabs, pipeline.WithLogger(logger))
	agg := aggregate.New(s.catalog)
	runner.RunInto(ctx, s.urls, agg)
	res := agg.Result()

	w, err := export.New(s.outDir)
	if err != nil {
		return err
	}
	// Outputs are written even when the run was interrupted.
	paths, err := w.Write(context.WithoutCancel(ctx), res, s.formats, export.Meta{
		Catalog:     s.catalog.Name,
		Mode:        string(s.mode),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if err := export.WriteSummaryTable(out, res.Summaries); err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, p := range paths {
		fmt.Fprintf(out, "💾 Saved %s\n", p)
	}
	return nil
}
