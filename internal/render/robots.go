package render

import (
	"context"
	stderrors "errors"

	"facscope/internal/errors"
	"facscope/internal/robots"
)

// ErrDisallowed is the cause of a fetch refused by robots.txt.
var ErrDisallowed = stderrors.New("disallowed by robots.txt")

// RobotsGuard refuses URLs that robots.txt disallows and delegates the rest.
type RobotsGuard struct {
	next    Renderer
	checker *robots.Checker
}

// NewRobotsGuard wraps next with a robots.txt check.
func NewRobotsGuard(next Renderer, checker *robots.Checker) *RobotsGuard {
	return &RobotsGuard{next: next, checker: checker}
}

func (g *RobotsGuard) Fetch(ctx context.Context, url string) (string, error) {
	if !g.checker.Allowed(ctx, url) {
		return "", errors.NewFetchError(url, ErrDisallowed)
	}
	return g.next.Fetch(ctx, url)
}
