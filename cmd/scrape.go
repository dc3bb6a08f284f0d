package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"facscope/internal/render"
	"facscope/internal/robots"
)

var (
	scrapeFlags batchFlags

	scrapeRenderer      string
	scrapeWait          time.Duration
	scrapeNavTimeout    time.Duration
	scrapeHeadless      bool
	scrapeUserAgent     string
	scrapeChromePath    string
	scrapeRespectRobots bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape faculty profile pages and match their expertise",
	Long: `Render every profile URL, extract the requested tabs, normalize the text and
match it against a subject catalog. Pages are processed one at a time; a page
that fails is recorded as an error row and the run continues.

Example:
  facscope scrape --urls urls.txt --tab "#tab_default_4" --tab "#tab_default_601" --catalog "Sem 2"`,
	Args: cobra.NoArgs,
	RunE: runScrapeCommand,
}

func runScrapeCommand(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, &scrapeFlags, func() (render.Renderer, error) {
		return newScrapeRenderer(cmd)
	})
}

func newScrapeRenderer(cmd *cobra.Command) (render.Renderer, error) {
	kind, err := render.ParseKind(pick(cmd, "renderer", scrapeRenderer, cfg.Renderer.Kind))
	if err != nil {
		return nil, err
	}

	opts := cfg.ChromeOptions()
	if cmd.Flags().Changed("wait") {
		opts.Wait = scrapeWait
	}
	if cmd.Flags().Changed("nav-timeout") {
		opts.NavigationTimeout = scrapeNavTimeout
	}
	if cmd.Flags().Changed("headless") {
		opts.Headless = scrapeHeadless
	}
	opts.UserAgent = pick(cmd, "user-agent", scrapeUserAgent, opts.UserAgent)
	opts.ExecPath = pick(cmd, "chrome-path", scrapeChromePath, opts.ExecPath)

	var r render.Renderer
	switch kind {
	case render.KindStatic:
		r = render.NewStaticRenderer(opts.UserAgent, opts.NavigationTimeout, logger)
	default:
		r = render.NewChromeRenderer(opts, logger)
	}

	respect := cfg.Renderer.RespectRobots
	if cmd.Flags().Changed("respect-robots") {
		respect = scrapeRespectRobots
	}
	if respect {
		checker := robots.NewChecker(&http.Client{Timeout: 10 * time.Second}, robots.DefaultAgent, logger)
		r = render.NewRobotsGuard(r, checker)
	}
	return r, nil
}

func init() {
	addBatchFlags(scrapeCmd, &scrapeFlags)
	scrapeCmd.Flags().StringVar(&scrapeRenderer, "renderer", "", "Page renderer: chrome or static (default chrome)")
	scrapeCmd.Flags().DurationVar(&scrapeWait, "wait", 10*time.Second, "Time given to page scripts before the DOM is captured")
	scrapeCmd.Flags().DurationVar(&scrapeNavTimeout, "nav-timeout", 30*time.Second, "Navigation and capture timeout per page")
	scrapeCmd.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run Chrome headless")
	scrapeCmd.Flags().StringVar(&scrapeUserAgent, "user-agent", "", "User-Agent header sent with requests")
	scrapeCmd.Flags().StringVar(&scrapeChromePath, "chrome-path", "", "Chrome executable (default: auto-detect)")
	scrapeCmd.Flags().BoolVar(&scrapeRespectRobots, "respect-robots", false, "Skip pages disallowed by robots.txt")
	rootCmd.AddCommand(scrapeCmd)
}
