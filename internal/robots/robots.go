// Package robots answers whether a page may be fetched under its host's
// robots.txt.
package robots

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"
)

// DefaultAgent is the user-agent group consulted before "*".
const DefaultAgent = "facscope"

// Checker fetches robots.txt once per host and caches the parsed rules.
// Hosts whose robots.txt cannot be fetched or parsed are allowed (fail-open).
type Checker struct {
	client *http.Client
	agent  string
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData
}

// NewChecker creates a Checker. A nil client uses a client with a 10s timeout.
func NewChecker(client *http.Client, agent string, logger zerolog.Logger) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if agent == "" {
		agent = DefaultAgent
	}
	return &Checker{
		client: client,
		agent:  agent,
		logger: logger,
		cache:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether raw may be fetched. Unparsable URLs are refused.
func (c *Checker) Allowed(ctx context.Context, raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := parsed.Scheme + "://" + parsed.Host

	data := c.rules(ctx, host)
	if data == nil {
		return true
	}
	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return data.TestAgent(path, c.agent)
}

func (c *Checker) rules(ctx context.Context, host string) *robotstxt.RobotsData {
	c.mu.Lock()
	data, ok := c.cache[host]
	c.mu.Unlock()
	if ok {
		return data
	}

	data = c.fetch(ctx, host)
	c.mu.Lock()
	c.cache[host] = data
	c.mu.Unlock()
	return data
}

func (c *Checker) fetch(ctx context.Context, host string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.agent)
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("host", host).Msg("robots: could not fetch robots.txt, allowing")
		return nil
	}
	defer resp.Body.Close()
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.logger.Warn().Err(err).Str("host", host).Msg("robots: could not parse robots.txt, allowing")
		return nil
	}
	return data
}
