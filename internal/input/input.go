// Package input reads the URL and tab-identifier lists fed to a scrape.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParseLines returns the non-empty trimmed lines of s, in order.
func ParseLines(s string) []string {
	lines := []string{}
	for _, l := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// ReadLines returns the non-empty trimmed lines read from r.
func ReadLines(r io.Reader) ([]string, error) {
	lines := []string{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadFile returns the non-empty trimmed lines of the file at path. The path
// "-" reads from stdin.
func ReadFile(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return ReadLines(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// FromFeed returns the item links of an RSS, Atom or JSON feed, in feed order.
// Directory pages that publish their faculty as a feed can seed a scrape this
// way.
func FromFeed(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}
	return feedLinks(feed), nil
}

// FromFeedReader is FromFeed over an already open feed document.
func FromFeedReader(r io.Reader) ([]string, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return feedLinks(feed), nil
}

func feedLinks(feed *gofeed.Feed) []string {
	links := []string{}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		if l := strings.TrimSpace(item.Link); l != "" {
			links = append(links, l)
		}
	}
	return links
}
