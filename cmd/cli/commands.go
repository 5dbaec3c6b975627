package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"
	"resultdash/internal/report"

	"github.com/spf13/cobra"
)

// filterFlags mirror the dashboard controls.
type filterFlags struct {
	categories []string
	writtenMin float64
	writtenMax float64
	limit      int
	window     bool
	rankFrom   int
	rankTo     int
	bins       int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.categories, "category", "c", nil, "Allowed categories (default: all)")
	flags.Float64Var(&f.writtenMin, "written-min", 0, "Lowest written total (default: dataset minimum)")
	flags.Float64Var(&f.writtenMax, "written-max", 0, "Highest written total (default: dataset maximum)")
	flags.IntVarP(&f.limit, "limit", "n", dashboard.DefaultOptions().DefaultRowCount, "Keep the first N matches")
	flags.BoolVar(&f.window, "window", false, "Limit by row position (--rank-from..--rank-to) instead of count")
	flags.IntVar(&f.rankFrom, "rank-from", 1, "First row position, 1-based")
	flags.IntVar(&f.rankTo, "rank-to", 0, "Last row position, inclusive (default: last row)")
	flags.IntVar(&f.bins, "bins", dashboard.DefaultOptions().HistogramBins, "Histogram bins")
}

func (f *filterFlags) state(cmd *cobra.Command, ds *dataset.Dataset) (dashboard.State, dashboard.Options, error) {
	opts := dashboard.DefaultOptions()
	if f.bins < 1 {
		return dashboard.State{}, opts, errors.New("--bins must be positive")
	}
	opts.HistogramBins = f.bins
	if f.window {
		opts.RowPolicy = dashboard.RowPolicyWindow
	}

	st := dashboard.DefaultState(ds, opts)
	flags := cmd.Flags()
	if flags.Changed("category") {
		st.Categories = f.categories
	}
	if flags.Changed("written-min") {
		st.Written.Min = f.writtenMin
	}
	if flags.Changed("written-max") {
		st.Written.Max = f.writtenMax
	}

	if f.window && flags.Changed("limit") {
		return dashboard.State{}, opts, errors.New("--limit cannot be combined with --window")
	}

	switch {
	case f.window:
		to := f.rankTo
		if !flags.Changed("rank-to") {
			to = ds.Len()
		}
		st.Rows = dashboard.SliderWindow(f.rankFrom, to)
	case flags.Changed("rank-from") || flags.Changed("rank-to"):
		return dashboard.State{}, opts, errors.New("--rank-from and --rank-to require --window")
	default:
		st.Rows = dataset.RowLimit{N: f.limit}
	}
	return st, opts, nil
}

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct categories in first-seen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := root.load(cmd)
			if err != nil {
				return err
			}
			for _, c := range ds.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newFilterCmd(root *rootOptions) *cobra.Command {
	var (
		f      filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the records that pass the filters",
		Long: `Print the records that pass the category, written-marks and row filters.

Example: resultdash-cli filter -f upsc_2022.xlsx -c Open -c SC --written-min 800 -n 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := root.load(cmd)
			if err != nil {
				return err
			}
			st, _, err := f.state(cmd, ds)
			if err != nil {
				return err
			}
			records := ds.Filter(st.Criteria())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			return writeTable(cmd.OutOrStdout(), records)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCountsCmd(root *rootOptions) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Count the filtered records per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := root.load(cmd)
			if err != nil {
				return err
			}
			st, _, err := f.state(cmd, ds)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tCOUNT\tSHARE")
			for _, c := range dataset.CategoryCounts(ds.Filter(st.Criteria())) {
				fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", c.Category, c.Count, c.Share*100)
			}
			return w.Flush()
		},
	}
	f.register(cmd)
	return cmd
}

func newMedianCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "median [field]",
		Short: "Median of a numeric column over the whole dataset",
		Long: `Median of W_total (default), PT_Marks, F_Total or Rank over every record.

Example: resultdash-cli median PT_Marks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := string(dataset.FieldWrittenTotal)
			if len(args) == 1 {
				name = args[0]
			}
			field, err := dataset.ParseNumericField(name)
			if err != nil {
				return err
			}
			ds, err := root.load(cmd)
			if err != nil {
				return err
			}
			median, err := ds.Median(field)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(median, 'f', -1, 64))
			return nil
		},
	}
}

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var (
		f      filterFlags
		asHTML bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render the dashboard view as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := root.load(cmd)
			if err != nil {
				return err
			}
			st, opts, err := f.state(cmd, ds)
			if err != nil {
				return err
			}
			view, err := dashboard.Build(ds, st, opts)
			if err != nil {
				return err
			}
			if asHTML {
				_, err = cmd.OutOrStdout().Write(report.HTML(view))
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report.Markdown(view))
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Emit a complete HTML page")
	return cmd
}

func writeTable(out io.Writer, records []dataset.Record) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tROLL_NO\tNAME\tCOMM\tPWBD\tW_TOTAL\tPT_MARKS\tF_TOTAL")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Rank, r.RollNo, r.Name, r.Category, r.DisabilityStatus,
			formatScore(r.WrittenTotal), formatScore(r.InterviewMarks), formatScore(r.FinalTotal))
	}
	return w.Flush()
}

type recordRow struct {
	RollNo           string   `json:"roll_no"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	DisabilityStatus string   `json:"disability_status"`
	WrittenTotal     *float64 `json:"written_total"`
	InterviewMarks   *float64 `json:"interview_marks"`
	FinalTotal       *float64 `json:"final_total"`
	Rank             int      `json:"rank"`
}

func writeJSON(out io.Writer, records []dataset.Record) error {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = recordRow{
			RollNo:           r.RollNo,
			Name:             r.Name,
			Category:         r.Category,
			DisabilityStatus: r.DisabilityStatus,
			WrittenTotal:     finite(r.WrittenTotal),
			InterviewMarks:   finite(r.InterviewMarks),
			FinalTotal:       finite(r.FinalTotal),
			Rank:             r.Rank,
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
