package input

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const facultyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Faculty</title>
    <link>https://example.edu/faculty</link>
    <item><title>A</title><link>https://example.edu/faculty/a</link></item>
    <item><title>No link</title></item>
    <item><title>B</title><link> https://example.edu/faculty/b </link></item>
  </channel>
</rss>`

func TestParseLines(t *testing.T) {
	got := ParseLines("  #tab_default_4 \n\n\t#tab_default_601\r\n   \n")
	assert.Equal(t, []string{"#tab_default_4", "#tab_default_601"}, got)
	assert.Empty(t, ParseLines(" \n\n "))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://a.edu/1\n\n https://a.edu/2 \n"), 0o644))

	got, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.edu/1", "https://a.edu/2"}, got)

	got, err = ReadFile("-", strings.NewReader("x\ny\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestFromFeedReader(t *testing.T) {
	links, err := FromFeedReader(strings.NewReader(facultyFeed))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.edu/faculty/a", "https://example.edu/faculty/b"}, links)

	_, err = FromFeedReader(strings.NewReader("not a feed"))
	assert.Error(t, err)
}

func TestFromFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(facultyFeed))
	}))
	defer srv.Close()

	links, err := FromFeed(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	assert.Len(t, links, 2)
}
