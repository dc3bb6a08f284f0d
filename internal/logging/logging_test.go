package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatJSON, false)
	l.Debug().Msg("hidden")
	l.Info().Str("url", "https://example.edu").Msg("page extracted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "https://example.edu", entry["url"])
	assert.Equal(t, "page extracted", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatJSON, true)
	l.Debug().Msg("shown")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatConsole, false)
	l.Info().Str("tab", "Subjects").Msg("hello")
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "tab=")
	assert.NotContains(t, out, "{")
}
