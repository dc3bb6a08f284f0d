package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facscope/internal/aggregate"
	apperrors "facscope/internal/errors"
	"facscope/internal/export"
	"facscope/internal/render"
)

const profilePage = `<html><body>
<h3 class="facDet1">Dr. One</h3>
<ul><li><a href="#tab_default_4">Subjects</a></li></ul>
<div id="tab_default_4"><p>Teaches Machine Learning</p><p>and IoT</p></div>
</body></html>`

// resetFlags clears flag values left over from a previous Execute.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				require.NoError(t, sv.Replace(nil))
			} else {
				require.NoError(t, f.Value.Set(f.DefValue))
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	snapshots := filepath.Join(dir, "snapshots")
	require.NoError(t, os.MkdirAll(snapshots, 0o755))
	writeFile(t, snapshots, render.SnapshotName("https://example.edu/f/1"), profilePage)

	cfgPath := writeFile(t, dir, "config.yaml", "output:\n  formats: [csv]\n")
	urls := writeFile(t, dir, "urls.txt", "https://example.edu/f/1\n\n  https://example.edu/f/2  \n")
	outDir := filepath.Join(dir, "out")

	stdout, err := execute(t, "extract",
		"--config", cfgPath,
		"--log-format", "json",
		"--snapshots", snapshots,
		"--urls", urls,
		"--tab", "#tab_default_4",
		"--out", outDir,
		"--format", "csv,json",
		"--no-normalize",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dr. One")
	assert.Contains(t, stdout, filepath.Join(outDir, export.ExpertiseFile))

	assert.Equal(t, [][]string{
		{"Faculty Name", "Matched Expertise"},
		{"Dr. One", "Machine Learning, IoT"},
		{"Error", aggregate.NoExpertiseFound},
	}, readCSV(t, filepath.Join(outDir, export.ExpertiseFile)))

	raw := readCSV(t, filepath.Join(outDir, export.RawDataFile))
	require.Len(t, raw, 3)
	assert.Equal(t, []string{"https://example.edu/f/1", "Dr. One", "Subjects", "Teaches Machine Learning and IoT", "Machine Learning, IoT"}, raw[1])
	assert.Equal(t, "https://example.edu/f/2", raw[2][0])
	assert.True(t, strings.HasPrefix(raw[2][3], "Error scraping URL https://example.edu/f/2: "))

	_, err = os.Stat(filepath.Join(outDir, export.JSONFile))
	assert.NoError(t, err)
}

func TestExtractCommandCatalogFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, render.SnapshotName("https://example.edu/f/1"), profilePage)
	cfgPath := writeFile(t, dir, "config.yaml", `
catalog: Labs
tabs: ["#tab_default_4"]
extract:
  normalize: false
catalogs:
  - name: Labs
    subjects: [IoT]
`)
	urls := writeFile(t, dir, "urls.txt", "https://example.edu/f/1\n")
	outDir := filepath.Join(dir, "out")

	_, err := execute(t, "extract", "--config", cfgPath, "--log-format", "json",
		"--snapshots", dir, "--urls", urls, "--out", outDir)
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(outDir, export.ExpertiseFile))
	assert.Equal(t, []string{"Dr. One", "IoT"}, rows[1])
}

func TestExtractCommandRequiresInput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "")
	urls := writeFile(t, dir, "urls.txt", "\n  \n")

	_, err := execute(t, "extract", "--config", cfgPath, "--urls", urls, "--tab", "#tab_default_4")
	require.Error(t, err)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please enter at least one URL and one tab href", ve.Message)

	urls = writeFile(t, dir, "urls2.txt", "https://example.edu/f/1\n")
	_, err = execute(t, "extract", "--config", cfgPath, "--urls", urls)
	assert.ErrorAs(t, err, &ve)
}

func TestExtractCommandRejectsBadSettings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "")
	urls := writeFile(t, dir, "urls.txt", "https://example.edu/f/1\n")

	for _, extra := range [][]string{
		{"--catalog", "Sem 9"},
		{"--mode", "rows"},
		{"--format", "xlsx"},
	} {
		args := append([]string{"extract", "--config", cfgPath, "--urls", urls, "--tab", "#t", "--out", dir}, extra...)
		_, err := execute(t, args...)
		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve, "%v", extra)
	}
}

func TestRootRejectsMissingConfig(t *testing.T) {
	_, err := execute(t, "catalogs", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	var ce *apperrors.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestCatalogsCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", `
catalogs:
  - name: Labs
    subjects: [Quantum Computing]
`)

	out, err := execute(t, "catalogs", "--config", cfgPath)
	require.NoError(t, err)
	for _, name := range []string{"Sem 1", "Sem 2", "Electives", "Labs", "All (default)"} {
		assert.Contains(t, out, "📚 "+name)
	}
	assert.Contains(t, out, "- Quantum Computing")

	out, err = execute(t, "catalogs", "--config", cfgPath, "--name", "sem 2")
	require.NoError(t, err)
	assert.Contains(t, out, "📚 Sem 2")
	assert.Contains(t, out, "- Deep Learning")
	assert.NotContains(t, out, "Electives")

	_, err = execute(t, "catalogs", "--config", cfgPath, "--name", "nope")
	assert.Error(t, err)
}
