package render

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"facscope/internal/errors"
)

// StaticRenderer fetches pages with a plain HTTP GET. It suits pages whose
// tab panels are present in the server response and need no scripting.
type StaticRenderer struct {
	userAgent string
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewStaticRenderer creates a StaticRenderer. A zero timeout uses 30s.
func NewStaticRenderer(userAgent string, timeout time.Duration, logger zerolog.Logger) *StaticRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StaticRenderer{userAgent: userAgent, timeout: timeout, logger: logger}
}

// Fetch returns the response body of url. Transport errors and non-2xx
// responses are reported as fetch errors.
func (r *StaticRenderer) Fetch(ctx context.Context, url string) (string, error) {
	opts := []colly.CollectorOption{
		colly.IgnoreRobotsTxt(),
		colly.StdlibContext(ctx),
	}
	if r.userAgent != "" {
		opts = append(opts, colly.UserAgent(r.userAgent))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(r.timeout)

	var (
		html     string
		fetchErr error
	)
	c.OnResponse(func(resp *colly.Response) {
		html = string(resp.Body)
	})
	c.OnError(func(resp *colly.Response, err error) {
		fetchErr = err
	})
	c.OnRequest(func(req *colly.Request) {
		r.logger.Debug().Str("url", req.URL.String()).Msg("static: visiting")
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = err
	}
	c.Wait()
	if fetchErr != nil {
		return "", errors.NewFetchError(url, fetchErr)
	}
	return html, nil
}
