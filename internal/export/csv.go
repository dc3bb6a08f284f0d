package export

import (
	"encoding/csv"
	"io"

	"facscope/internal/aggregate"
)

// Column headers of the CSV outputs.
var (
	RecordsHeader   = []string{"URL", "Faculty Name", "Tab Name", "Row Data", "Matched Expertise"}
	SummariesHeader = []string{"Faculty Name", "Matched Expertise"}
)

// WriteRecordsCSV writes the flat record table with a header row and no
// index column.
func WriteRecordsCSV(w io.Writer, records []aggregate.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordsHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.URL, r.FacultyName, r.TabName, r.Content, r.MatchedString()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummariesCSV writes one row per faculty page.
func WriteSummariesCSV(w io.Writer, summaries []aggregate.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummariesHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := cw.Write([]string{s.FacultyName, s.ExpertiseString()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
