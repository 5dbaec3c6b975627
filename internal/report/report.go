// Package report renders a dashboard view as a Markdown summary and as a
// standalone HTML page.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const title = "Result summary"

// Markdown renders v as a Markdown document.
func Markdown(v dashboard.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Dataset `%s`: %d records, %d selected.\n\n", v.DatasetID, v.Total, len(v.Records))

	b.WriteString("## Filters\n\n")
	fmt.Fprintf(&b, "- Categories: %s\n", describeCategories(v.State.Categories))
	fmt.Fprintf(&b, "- Written marks: %s to %s\n", num(v.State.Written.Min), num(v.State.Written.Max))
	fmt.Fprintf(&b, "- Rows: %s\n\n", describeRows(v.State.Rows))

	b.WriteString("## Reference medians (all records)\n\n")
	b.WriteString("| Measure | Median |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s |\n", dataset.FieldWrittenTotal, optional(v.Reference.WrittenMedian))
	fmt.Fprintf(&b, "| %s | %s |\n\n", dataset.FieldInterviewMarks, optional(v.Reference.InterviewMedian))

	b.WriteString("## Categories\n\n")
	if len(v.Counts) == 0 {
		b.WriteString("No records match the current filters.\n\n")
	} else {
		b.WriteString("| Category | Count | Share |\n|---|---|---|\n")
		for _, c := range v.Counts {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", escape(c.Category), c.Count, c.Share*100)
		}
		b.WriteString("\n")
	}

	if len(v.Boxes) > 0 {
		b.WriteString("## Interview marks by category\n\n")
		b.WriteString("| Category | Count | Min | Q1 | Median | Q3 | Max |\n|---|---|---|---|---|---|---|\n")
		for _, s := range v.Boxes {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
				escape(s.Category), s.Count, num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max))
		}
		b.WriteString("\n")
	}

	if len(v.Histogram.Counts) > 0 {
		fmt.Fprintf(&b, "## %s distribution\n\n", v.Histogram.Field)
		b.WriteString("| From | To | Count |\n|---|---|---|\n")
		for i, c := range v.Histogram.Counts {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", num(v.Histogram.Edges[i]), num(v.Histogram.Edges[i+1]), c)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders v as a complete HTML page.
func HTML(v dashboard.View) []byte {
	// Parsers keep state between calls and cannot be shared.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML,
	})
	return markdown.ToHTML([]byte(Markdown(v)), p, renderer)
}

func describeCategories(categories []string) string {
	if len(categories) == 0 {
		return "none"
	}
	escaped := make([]string, len(categories))
	for i, c := range categories {
		escaped[i] = escape(c)
	}
	return strings.Join(escaped, ", ")
}

// Category names come straight from the spreadsheet.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func describeRows(rows dataset.RowSelector) string {
	switch r := rows.(type) {
	case dataset.RowLimit:
		return fmt.Sprintf("first %d matches", r.N)
	case dataset.RowWindow:
		return fmt.Sprintf("positions %d to %d", r.Lo+1, r.Hi)
	}
	return "all"
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return num(*v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
