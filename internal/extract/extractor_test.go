package extract

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lowerNormalizer struct{}

func (lowerNormalizer) Normalize(s string) string { return strings.ToLower(s) }

func loadFixture(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/profile.html")
	require.NoError(t, err)
	return string(b)
}

func TestExtractFlat(t *testing.T) {
	e := New(nil)
	got := e.Extract(loadFixture(t), []string{
		"#tab_default_1", "#tab_default_4", "#tab_default_601", "#tab_default_9", "#nope",
	})

	require.Len(t, got, 5)
	assert.Equal(t, TabRecord{Name: "Profile", Text: "Dr. Raman teaches Machine Learning and leads the IoT lab."}, got[0])
	assert.Equal(t, TabRecord{Name: "Subjects Taught", Text: "Year Course 2022 Programming in Java 2023 Deep Learning & CNN Systems"}, got[1])
	assert.Equal(t, TabRecord{Name: "Research", Text: "Robotics Blockchain"}, got[2])
	assert.Equal(t, TabRecord{Name: "Awards", Text: NoContentFound}, got[3])
	assert.Equal(t, TabRecord{Name: TabNotFoundName, Text: TabNotFoundContent}, got[4])
}

func TestExtractTable(t *testing.T) {
	e := New(lowerNormalizer{}, WithMode(ModeTable))
	got := e.Extract(loadFixture(t), []string{"#tab_default_4", "#tab_default_1", "#tab_default_9", "#nope"})

	require.Len(t, got, 4)
	assert.Equal(t, "Subjects Taught", got[0].Name)
	assert.Equal(t, [][]string{
		{"year", "course"},
		{"2022", "programming in java"},
		{"2023", "deep learning & cnn systems"},
	}, got[0].Rows)
	assert.Equal(t, []string{"year course", "2022 programming in java", "2023 deep learning & cnn systems"}, got[0].Lines())

	assert.Equal(t, [][]string{{NoTableFound}}, got[1].Rows)
	assert.Equal(t, TabRecord{Name: "Awards", Rows: [][]string{{NoContentFound}}}, got[2])
	assert.Equal(t, TabRecord{Name: TabNotFoundName, Rows: [][]string{{TabNotFoundContent}}}, got[3])
}

func TestExtractNormalizesFlatBlock(t *testing.T) {
	e := New(lowerNormalizer{})
	got := e.Extract(loadFixture(t), []string{"#tab_default_601"})
	assert.Equal(t, "robotics blockchain", got[0].Text)
	assert.Equal(t, []string{"robotics blockchain"}, got[0].Lines())
}

func TestExtractCardinality(t *testing.T) {
	html := loadFixture(t)
	pool := []string{"#tab_default_1", "#missing", "tab_default_1", "", "#tab_default_9", "##tab_default_1"}

	for _, mode := range []Mode{ModeFlat, ModeTable} {
		for k := 0; k <= 12; k++ {
			ids := make([]string, k)
			for i := range ids {
				ids[i] = pool[(i*7+k)%len(pool)]
			}
			t.Run(fmt.Sprintf("%s/%d", mode, k), func(t *testing.T) {
				got := New(nil, WithMode(mode)).Extract(html, ids)
				require.Len(t, got, k)
				for i, id := range ids {
					if id == "#tab_default_1" {
						assert.Equal(t, "Profile", got[i].Name)
					}
				}
			})
		}
	}
}

func TestExtractAnchorMustMatchExactly(t *testing.T) {
	got := New(nil).Extract(loadFixture(t), []string{"tab_default_1", "#TAB_DEFAULT_1", "##tab_default_1"})
	for _, r := range got {
		assert.Equal(t, TabRecord{Name: TabNotFoundName, Text: TabNotFoundContent}, r)
	}
}

func TestExtractStripsSingleFragmentMarker(t *testing.T) {
	html := `<a href="##odd">Odd</a><div id="#odd">kept</div><div id="odd">wrong</div>`
	got := New(nil).Extract(html, []string{"##odd"})
	assert.Equal(t, TabRecord{Name: "Odd", Text: "kept"}, got[0])
}

func TestExtractIDNeedsNoEscaping(t *testing.T) {
	html := `<a href="#tab.1:a">Dotted</a><div id="tab.1:a"><p>content</p></div>`
	got := New(nil).Extract(html, []string{"#tab.1:a"})
	assert.Equal(t, TabRecord{Name: "Dotted", Text: "content"}, got[0])
}

func TestExtractEmptyTable(t *testing.T) {
	html := `<a href="#t">T</a><div id="t"><table></table></div>`
	got := New(nil, WithMode(ModeTable)).Extract(html, []string{"#t"})
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Lines())
}

func TestProfile(t *testing.T) {
	p := New(nil).Profile("https://example.edu/f/1", loadFixture(t), []string{"#tab_default_601"})
	assert.Equal(t, "https://example.edu/f/1", p.URL)
	assert.Equal(t, "Dr. Asha Raman", p.FacultyName)
	require.Len(t, p.Tabs, 1)
	assert.Equal(t, "Research", p.Tabs[0].Name)
}

func TestProfileNameNotFound(t *testing.T) {
	p := New(nil).Profile("u", "<html><body><h3>Someone</h3></body></html>", nil)
	assert.Equal(t, FacultyNameNotFound, p.FacultyName)
	assert.Empty(t, p.Tabs)

	custom := New(nil, WithNameSelector("h3")).Profile("u", "<h3> Someone </h3>", nil)
	assert.Equal(t, "Someone", custom.FacultyName)
}

func TestProfileEmptyNameHeading(t *testing.T) {
	p := New(nil).Profile("u", `<h3 class="facDet1">   </h3>`, nil)
	assert.Equal(t, "", p.FacultyName)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeFlat, m)

	m, err = ParseMode(" TABLE ")
	require.NoError(t, err)
	assert.Equal(t, ModeTable, m)

	_, err = ParseMode("rows")
	assert.Error(t, err)
}
