package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tabInfo describes one fragment anchor found in a page.
type tabInfo struct {
	Href     string
	Name     string
	HasPanel bool
}

func runTabs(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tabs", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: snapshot tabs FILE.html [FILE.html ...]")
	}
	for _, path := range fs.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tabs, err := listTabs(string(b))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(out, "%s\n", path)
		for _, t := range tabs {
			panel := "no panel"
			if t.HasPanel {
				panel = "panel"
			}
			fmt.Fprintf(out, "  %-24s %-10s %s\n", t.Href, panel, t.Name)
		}
	}
	return nil
}

// listTabs returns the distinct fragment anchors of a page in document
// order, noting whether a div with the matching id exists.
func listTabs(html string) ([]tabInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	ids := map[string]bool{}
	doc.Find("div[id]").Each(func(_ int, s *goquery.Selection) {
		ids[s.AttrOr("id", "")] = true
	})

	var tabs []tabInfo
	seen := map[string]bool{}
	doc.Find(`a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "#" || seen[href] {
			return
		}
		seen[href] = true
		tabs = append(tabs, tabInfo{
			Href:     href,
			Name:     strings.Join(strings.Fields(s.Text()), " "),
			HasPanel: ids[strings.TrimPrefix(href, "#")],
		})
	})
	return tabs, nil
}
