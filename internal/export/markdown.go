package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"facscope/internal/aggregate"
)

// WriteMarkdown writes a human-readable report: run details, the expertise
// summary and the per-tab records.
func WriteMarkdown(w io.Writer, res aggregate.Result, meta Meta) error {
	md := markdown.NewMarkdown(w)

	md.H1("Faculty Expertise Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", meta.timestamp()},
			{"Catalog", orDash(meta.Catalog)},
			{"Mode", orDash(meta.Mode)},
			{"Faculty Pages", strconv.Itoa(len(res.Summaries))},
			{"Failed Pages", strconv.Itoa(failedPages(res))},
		},
	})
	md.PlainText("")

	md.H2("Expertise")
	md.PlainText("")
	rows := make([][]string, 0, len(res.Summaries))
	for _, s := range res.Summaries {
		rows = append(rows, []string{cell(s.FacultyName), cell(s.ExpertiseString()), cell(s.URL)})
	}
	md.Table(markdown.TableSet{Header: []string{"Faculty Name", "Matched Expertise", "URL"}, Rows: rows})
	md.PlainText("")

	md.H2("Records")
	md.PlainText("")
	rows = make([][]string, 0, len(res.Records))
	for _, r := range res.Records {
		rows = append(rows, []string{cell(r.FacultyName), cell(r.TabName), cell(r.Content), cell(r.MatchedString())})
	}
	md.Table(markdown.TableSet{Header: []string{"Faculty Name", "Tab Name", "Row Data", "Matched Expertise"}, Rows: rows})

	return md.Build()
}

func failedPages(res aggregate.Result) int {
	seen := map[string]bool{}
	for _, r := range res.Records {
		if r.Failed {
			seen[r.URL] = true
		}
	}
	return len(seen)
}

// cell keeps table cells on one line and escapes column separators.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WriteSummaryTable writes the expertise summary as a single Markdown table,
// for console output after a run.
func WriteSummaryTable(w io.Writer, summaries []aggregate.Summary) error {
	md := markdown.NewMarkdown(w)
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{cell(s.FacultyName), cell(s.ExpertiseString())})
	}
	md.Table(markdown.TableSet{Header: []string{"Faculty Name", "Matched Expertise"}, Rows: rows})
	return md.Build()
}
