// Package render fetches faculty pages and returns their HTML.
//
// Every Renderer call is a self-contained unit: it acquires whatever session
// it needs, returns the captured HTML or a *errors.FetchError, and releases
// the session before returning. Renderers never retry.
package render

import (
	"context"
	"fmt"
	"strings"

	"facscope/internal/errors"
)

// Renderer returns the HTML of a page.
type Renderer interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FuncRenderer adapts a function to the Renderer interface.
type FuncRenderer func(ctx context.Context, url string) (string, error)

func (f FuncRenderer) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Kind names a renderer implementation.
type Kind string

const (
	KindChrome Kind = "chrome"
	KindStatic Kind = "static"
)

// ParseKind validates a renderer name. An empty name selects KindChrome.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindChrome:
		return KindChrome, nil
	case KindStatic:
		return KindStatic, nil
	}
	return "", errors.NewValidationError("renderer", fmt.Sprintf("unknown renderer %q (want chrome or static)", s))
}
