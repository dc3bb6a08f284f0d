package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"facscope/internal/errors"
)

var unsafeNameRE = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SnapshotName returns the file name under which the HTML of url is saved.
func SnapshotName(url string) string {
	return unsafeNameRE.ReplaceAllString(url, "_") + ".html"
}

// FileRenderer serves previously captured pages from disk. file:// URLs are
// read directly; any other URL is looked up as SnapshotName(url) in Dir.
type FileRenderer struct {
	Dir string
}

// NewFileRenderer creates a FileRenderer over dir.
func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{Dir: dir}
}

func (r *FileRenderer) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewFetchError(url, err)
	}
	path := r.Path(url)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewFetchError(url, fmt.Errorf("reading snapshot: %w", err))
	}
	return string(b), nil
}

// Path returns the snapshot path used for url.
func (r *FileRenderer) Path(url string) string {
	if p, ok := strings.CutPrefix(url, "file://"); ok {
		return p
	}
	return filepath.Join(r.Dir, SnapshotName(url))
}
