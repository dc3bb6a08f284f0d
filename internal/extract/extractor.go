// Package extract pulls faculty profile content out of rendered HTML.
//
// Profile pages keep their content in tab widgets: each tab is an anchor whose
// href is a fragment reference ("#tab_default_4") and a panel div whose id is
// that reference without its leading "#". The extractor returns exactly one
// TabRecord per requested identifier, in request order, substituting
// placeholder records when the anchor or the panel is missing.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"facscope/internal/errors"
)

// Placeholder values used when the expected page structure is absent.
const (
	TabNotFoundName     = "Tab not found"
	TabNotFoundContent  = "Tab content not found"
	NoContentFound      = "No content found for this tab"
	NoTableFound        = "No table found in this tab"
	FacultyNameNotFound = "Faculty name not found"
)

// DefaultNameSelector locates the faculty name heading.
const DefaultNameSelector = "h3.facDet1"

// Mode selects how a panel's content is extracted.
type Mode string

const (
	// ModeFlat flattens the panel's visible text and normalizes it as one block.
	ModeFlat Mode = "flat"
	// ModeTable extracts the panel's first table row by row, normalizing each cell.
	ModeTable Mode = "table"
)

// ParseMode validates a mode name. An empty name selects ModeFlat.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFlat:
		return ModeFlat, nil
	case ModeTable:
		return ModeTable, nil
	}
	return "", errors.NewValidationError("mode", fmt.Sprintf("unknown extraction mode %q (want flat or table)", s))
}

// TabRecord is the content extracted for one requested tab. Text is set in
// flat mode and Rows in table mode.
type TabRecord struct {
	Name string
	Text string
	Rows [][]string
}

// Lines returns the record content as one string per output row: the text
// block in flat mode, or each table row's cells joined by a space.
func (r TabRecord) Lines() []string {
	if r.Rows == nil {
		return []string{r.Text}
	}
	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		lines[i] = strings.Join(row, " ")
	}
	return lines
}

// FacultyProfile is the extraction result for one page.
type FacultyProfile struct {
	URL         string
	FacultyName string
	Tabs        []TabRecord
}

// Normalizer cleans extracted text.
type Normalizer interface {
	Normalize(text string) string
}

// Extractor extracts tab records from rendered HTML.
type Extractor struct {
	mode         Mode
	norm         Normalizer
	nameSelector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMode sets the extraction mode. Default is ModeFlat.
func WithMode(m Mode) Option {
	return func(e *Extractor) {
		if m != "" {
			e.mode = m
		}
	}
}

// WithNameSelector overrides the CSS selector of the faculty name heading.
func WithNameSelector(sel string) Option {
	return func(e *Extractor) {
		if sel != "" {
			e.nameSelector = sel
		}
	}
}

// New creates an Extractor. A nil normalizer leaves text as extracted.
func New(norm Normalizer, opts ...Option) *Extractor {
	e := &Extractor{
		mode:         ModeFlat,
		norm:         norm,
		nameSelector: DefaultNameSelector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the extraction mode.
func (e *Extractor) Mode() Mode { return e.mode }

// Profile extracts the faculty name and the requested tabs of one page.
func (e *Extractor) Profile(url, html string, ids []string) FacultyProfile {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FacultyProfile{URL: url, FacultyName: FacultyNameNotFound, Tabs: e.missing(ids)}
	}
	return FacultyProfile{
		URL:         url,
		FacultyName: e.facultyName(doc),
		Tabs:        e.tabs(doc, ids),
	}
}

// Extract returns one record per identifier, in order. It never fails:
// unparsable HTML yields a "Tab not found" record for every identifier.
func (e *Extractor) Extract(html string, ids []string) []TabRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return e.missing(ids)
	}
	return e.tabs(doc, ids)
}

// facultyName returns the trimmed heading text. A heading that exists but is
// empty yields "", only a missing heading yields FacultyNameNotFound.
func (e *Extractor) facultyName(doc *goquery.Document) string {
	heading := doc.Find(e.nameSelector).First()
	if heading.Length() == 0 {
		return FacultyNameNotFound
	}
	return strings.TrimSpace(heading.Text())
}

func (e *Extractor) tabs(doc *goquery.Document, ids []string) []TabRecord {
	records := make([]TabRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, e.tab(doc, id))
	}
	return records
}

func (e *Extractor) tab(doc *goquery.Document, id string) TabRecord {
	link := findByAttr(doc.Selection, "a", "href", id)
	if link.Length() == 0 {
		return e.placeholder(TabNotFoundName, TabNotFoundContent)
	}
	name := strings.TrimSpace(link.Text())

	panel := findByAttr(doc.Selection, "div", "id", strings.TrimPrefix(id, "#"))
	if panel.Length() == 0 {
		return e.placeholder(name, NoContentFound)
	}

	if e.mode == ModeTable {
		return TabRecord{Name: name, Rows: e.tableRows(panel)}
	}
	return TabRecord{Name: name, Text: e.normalize(flatten(panel))}
}

func (e *Extractor) tableRows(panel *goquery.Selection) [][]string {
	table := panel.Find("table").First()
	if table.Length() == 0 {
		return [][]string{{NoTableFound}}
	}
	rows := [][]string{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := []string{}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, e.normalize(strings.TrimSpace(cell.Text())))
		})
		rows = append(rows, cells)
	})
	return rows
}

func (e *Extractor) placeholder(name, content string) TabRecord {
	if e.mode == ModeTable {
		return TabRecord{Name: name, Rows: [][]string{{content}}}
	}
	return TabRecord{Name: name, Text: content}
}

func (e *Extractor) missing(ids []string) []TabRecord {
	records := make([]TabRecord, len(ids))
	for i := range ids {
		records[i] = e.placeholder(TabNotFoundName, TabNotFoundContent)
	}
	return records
}

func (e *Extractor) normalize(s string) string {
	if e.norm == nil {
		return s
	}
	return e.norm.Normalize(s)
}

// findByAttr returns the first tag element whose attribute equals val
// exactly. Attribute values are compared directly so ids need no CSS escaping.
func findByAttr(root *goquery.Selection, tag, attr, val string) *goquery.Selection {
	return root.Find(tag + "[" + attr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		return v == val
	}).First()
}

// blockSelectors end a run of text; a space is inserted after each so that
// adjacent blocks do not fuse into one word.
const blockSelectors = "p, div, br, li, dt, dd, tr, td, th, h1, h2, h3, h4, h5, h6, section, article"

// flatten returns the panel's visible text with scripts removed and
// whitespace collapsed.
func flatten(panel *goquery.Selection) string {
	clone := panel.Clone()
	clone.Find("script, style, noscript, template").Remove()
	clone.Find(blockSelectors).AfterHtml(" ")
	return strings.Join(strings.Fields(clone.Text()), " ")
}
