package report

import (
	"strings"
	"testing"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView(t *testing.T) dashboard.View {
	t.Helper()
	records := []dataset.Record{
		{RollNo: "1", Category: "Open", DisabilityStatus: "No", WrittenTotal: 900, InterviewMarks: 180, FinalTotal: 1080, Rank: 1},
		{RollNo: "2", Category: "SC", DisabilityStatus: "No", WrittenTotal: 850, InterviewMarks: 200, FinalTotal: 1050, Rank: 2},
		{RollNo: "3", Category: "Open", DisabilityStatus: "Yes", WrittenTotal: 800, InterviewMarks: 160, FinalTotal: 960, Rank: 3},
	}
	ds := dataset.New("r.xlsx", []dataset.SheetInfo{{Name: "Sheet1", Rows: 3}}, records)

	opts := dashboard.DefaultOptions()
	opts.HistogramBins = 2
	view, err := dashboard.Build(ds, dashboard.DefaultState(ds, opts), opts)
	require.NoError(t, err)
	return view
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sampleView(t))

	assert.True(t, strings.HasPrefix(md, "# Result summary\n"))
	assert.Contains(t, md, "3 records, 3 selected.")
	assert.Contains(t, md, "- Categories: Open, SC\n")
	assert.Contains(t, md, "- Written marks: 800 to 900\n")
	assert.Contains(t, md, "- Rows: first 100 matches\n")
	assert.Contains(t, md, "| W_total | 850 |")
	assert.Contains(t, md, "| Open | 2 | 66.7% |")
	assert.Contains(t, md, "| SC | 1 | 200 | 200 | 200 | 200 | 200 |")
	assert.Contains(t, md, "## F_Total distribution")
}

func TestMarkdownEmptySelection(t *testing.T) {
	view := sampleView(t)
	view.State.Categories = nil
	view.Records = nil
	view.Counts = nil
	view.Boxes = nil
	view.Histogram = dataset.Histogram{}

	md := Markdown(view)
	assert.Contains(t, md, "- Categories: none\n")
	assert.Contains(t, md, "No records match the current filters.")
	assert.NotContains(t, md, "## Interview marks by category")
}

func TestDescribeRowsWindow(t *testing.T) {
	assert.Equal(t, "positions 1 to 926", describeRows(dashboard.SliderWindow(1, 926)))
	assert.Equal(t, "all", describeRows(nil))
}

func TestHTMLIsCompletePage(t *testing.T) {
	page := string(HTML(sampleView(t)))

	assert.Contains(t, page, "<title>Result summary</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<h1")
}

func TestCategoryNamesAreEscaped(t *testing.T) {
	records := []dataset.Record{
		{RollNo: "1", Category: "<script>alert(1)</script>", WrittenTotal: 900, InterviewMarks: 180, FinalTotal: 1080, Rank: 1},
		{RollNo: "2", Category: "A|B", WrittenTotal: 850, InterviewMarks: 200, FinalTotal: 1050, Rank: 2},
	}
	ds := dataset.New("r.xlsx", []dataset.SheetInfo{{Name: "Sheet1", Rows: 2}}, records)
	opts := dashboard.DefaultOptions()
	view, err := dashboard.Build(ds, dashboard.DefaultState(ds, opts), opts)
	require.NoError(t, err)

	md := Markdown(view)
	assert.Contains(t, md, `| A\|B | 1 | 50.0% |`)
	assert.NotContains(t, md, "<script>")

	page := string(HTML(view))
	assert.NotContains(t, page, "<script")
	assert.Contains(t, page, "A|B</td>")
}
