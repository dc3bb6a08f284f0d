// Package export writes scrape results to disk.
//
// CSV is the primary output: faculty_raw_data.csv holds one row per
// extracted record and faculty_expertise.csv one row per faculty page. JSON,
// Markdown, SQLite and PDF outputs are optional.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"facscope/internal/aggregate"
	"facscope/internal/errors"
)

// Format names an output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatSQLite   Format = "sqlite"
	FormatPDF      Format = "pdf"
)

// Output file names.
const (
	RawDataFile   = "faculty_raw_data.csv"
	ExpertiseFile = "faculty_expertise.csv"
	JSONFile      = "results.json"
	MarkdownFile  = "report.md"
	SQLiteFile    = "results.db"
	PDFFile       = "report.pdf"
)

// AllFormats lists every supported format in write order.
var AllFormats = []Format{FormatCSV, FormatJSON, FormatMarkdown, FormatSQLite, FormatPDF}

// ParseFormats validates format names, dropping duplicates. "markdown" is
// accepted for md and "db" for sqlite.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, n := range names {
		var f Format
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "csv":
			f = FormatCSV
		case "json":
			f = FormatJSON
		case "md", "markdown":
			f = FormatMarkdown
		case "sqlite", "db":
			f = FormatSQLite
		case "pdf":
			f = FormatPDF
		default:
			return nil, errors.NewValidationError("format",
				fmt.Sprintf("unknown output format %q (want csv, json, md, sqlite or pdf)", n))
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Meta describes the run that produced a result.
type Meta struct {
	Catalog     string
	Mode        string
	GeneratedAt time.Time
}

func (m Meta) timestamp() string {
	t := m.GeneratedAt
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

// Writer writes results into an output directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting dir, creating it if needed. An empty dir
// means the current working directory.
func New(dir string) (*Writer, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: dir}, nil
}

// Write exports res in every requested format and returns the paths written.
// It stops at the first failing format.
func (w *Writer) Write(ctx context.Context, res aggregate.Result, formats []Format, meta Meta) ([]string, error) {
	var paths []string
	for _, f := range formats {
		var (
			written []string
			err     error
		)
		switch f {
		case FormatCSV:
			written, err = w.writeCSV(res)
		case FormatJSON:
			written, err = w.writeFile(JSONFile, func(out io.Writer) error { return WriteJSON(out, res) })
		case FormatMarkdown:
			written, err = w.writeFile(MarkdownFile, func(out io.Writer) error { return WriteMarkdown(out, res, meta) })
		case FormatPDF:
			written, err = w.writeFile(PDFFile, func(out io.Writer) error { return WritePDF(out, res, meta) })
		case FormatSQLite:
			path := filepath.Join(w.OutputDir, SQLiteFile)
			err = WriteSQLite(ctx, path, res, meta)
			written = []string{path}
		default:
			err = fmt.Errorf("unsupported format %q", f)
		}
		if err != nil {
			return paths, fmt.Errorf("export %s: %w", f, err)
		}
		paths = append(paths, written...)
	}
	return paths, nil
}

func (w *Writer) writeCSV(res aggregate.Result) ([]string, error) {
	raw, err := w.writeFile(RawDataFile, func(out io.Writer) error { return WriteRecordsCSV(out, res.Records) })
	if err != nil {
		return nil, err
	}
	sum, err := w.writeFile(ExpertiseFile, func(out io.Writer) error { return WriteSummariesCSV(out, res.Summaries) })
	if err != nil {
		return raw, err
	}
	return append(raw, sum...), nil
}

func (w *Writer) writeFile(name string, write func(io.Writer) error) ([]string, error) {
	path := filepath.Join(w.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}
	return []string{path}, nil
}
