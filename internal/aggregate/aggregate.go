// Package aggregate merges per-URL extraction outcomes into the flat record
// table and the per-faculty expertise summary.
package aggregate

import (
	stderrors "errors"
	"fmt"
	"strings"

	"facscope/internal/errors"
	"facscope/internal/expertise"
	"facscope/internal/extract"
)

// Sentinels written in place of an empty match.
const (
	NoSubjectFound   = "No relevant subject found"
	NoExpertiseFound = "No relevant expertise found"
)

// ErrorLabel fills the faculty and tab columns of a failed URL's row.
const ErrorLabel = "Error"

// Record is one row of the flat output: one per tab in flat mode, one per
// table row in table mode.
type Record struct {
	URL         string   `json:"url"`
	FacultyName string   `json:"faculty_name"`
	TabName     string   `json:"tab_name"`
	Content     string   `json:"content"`
	Matched     []string `json:"matched_expertise"`
	Failed      bool     `json:"failed,omitempty"`
}

// MatchedString joins the matched subjects, or returns NoSubjectFound.
func (r Record) MatchedString() string {
	if len(r.Matched) == 0 {
		return NoSubjectFound
	}
	return strings.Join(r.Matched, ", ")
}

// Summary is the expertise found for one faculty page.
type Summary struct {
	URL         string   `json:"url"`
	FacultyName string   `json:"faculty_name"`
	Expertise   []string `json:"expertise"`
}

// ExpertiseString joins the expertise subjects, or returns NoExpertiseFound.
func (s Summary) ExpertiseString() string {
	if len(s.Expertise) == 0 {
		return NoExpertiseFound
	}
	return strings.Join(s.Expertise, ", ")
}

// Outcome is the result of processing one URL: a profile or an error.
type Outcome struct {
	URL     string
	Profile *extract.FacultyProfile
	Err     error
}

// Failed reports whether the URL could not be processed.
func (o Outcome) Failed() bool { return o.Err != nil || o.Profile == nil }

// Result holds both output tables.
type Result struct {
	Records   []Record  `json:"records"`
	Summaries []Summary `json:"summaries"`
}

// Aggregator accumulates outcomes in the order they are added.
type Aggregator struct {
	catalog   expertise.Catalog
	records   []Record
	summaries []Summary
}

// New creates an Aggregator matching against catalog.
func New(catalog expertise.Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// Add appends the rows and the summary of one outcome.
func (a *Aggregator) Add(o Outcome) {
	if o.Failed() {
		a.addFailure(o)
		return
	}

	p := o.Profile
	faculty := expertise.NewSet()
	for _, tab := range p.Tabs {
		for _, line := range tab.Lines() {
			matched := expertise.Match(line, a.catalog)
			faculty.Add(matched...)
			a.records = append(a.records, Record{
				URL:         o.URL,
				FacultyName: p.FacultyName,
				TabName:     tab.Name,
				Content:     line,
				Matched:     matched,
			})
		}
	}
	a.summaries = append(a.summaries, Summary{
		URL:         o.URL,
		FacultyName: p.FacultyName,
		Expertise:   faculty.Items(),
	})
}

func (a *Aggregator) addFailure(o Outcome) {
	cause := o.Err
	var fe *errors.FetchError
	if stderrors.As(cause, &fe) && fe.Err != nil {
		cause = fe.Err
	}
	if cause == nil {
		cause = stderrors.New("no profile extracted")
	}
	a.records = append(a.records, Record{
		URL:         o.URL,
		FacultyName: ErrorLabel,
		TabName:     ErrorLabel,
		Content:     fmt.Sprintf("Error scraping URL %s: %v", o.URL, cause),
		Failed:      true,
	})
	a.summaries = append(a.summaries, Summary{URL: o.URL, FacultyName: ErrorLabel})
}

// Records returns the flat rows accumulated so far.
func (a *Aggregator) Records() []Record {
	return append([]Record(nil), a.records...)
}

// Summaries returns the per-faculty summaries accumulated so far.
func (a *Aggregator) Summaries() []Summary {
	return append([]Summary(nil), a.summaries...)
}

// Result returns both tables.
func (a *Aggregator) Result() Result {
	return Result{Records: a.Records(), Summaries: a.Summaries()}
}

// Fold aggregates outcomes in order.
func Fold(catalog expertise.Catalog, outcomes []Outcome) Result {
	a := New(catalog)
	for _, o := range outcomes {
		a.Add(o)
	}
	return a.Result()
}
