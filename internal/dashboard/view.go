// Package dashboard turns the current filter controls into the view-state a
// chart layer draws: filtered rows, category counts, reference medians,
// per-category box summaries and a score histogram.
//
// Everything here is a pure function of the immutable dataset and the
// requested state, so handlers recompute it per request.
package dashboard

import (
	"errors"

	"resultdash/domain/dataset"
)

// RowPolicy selects how the row control limits results.
type RowPolicy string

const (
	// RowPolicyCount keeps the first N matching records.
	RowPolicyCount RowPolicy = "count"
	// RowPolicyWindow keeps records whose unfiltered position falls in a
	// slider range.
	RowPolicyWindow RowPolicy = "window"
)

// CategoryOrder is the display order of the box view. Categories not
// listed follow in first-seen order.
var CategoryOrder = []string{"Open", "OBC", "SC", "ST", "EWS"}

// Options are the configured defaults of the dashboard.
type Options struct {
	RowPolicy       RowPolicy
	DefaultRowCount int
	HistogramBins   int
}

// DefaultOptions mirror the stock dashboard controls.
func DefaultOptions() Options {
	return Options{
		RowPolicy:       RowPolicyCount,
		DefaultRowCount: 100,
		HistogramBins:   20,
	}
}

// State is the value of every filter control.
type State struct {
	Categories []string
	Written    dataset.WrittenRange
	Rows       dataset.RowSelector
}

// Criteria converts the control state into a dataset filter.
func (s State) Criteria() dataset.Criteria {
	return dataset.Criteria{
		Categories: s.Categories,
		Written:    s.Written,
		Rows:       s.Rows,
	}
}

// SliderWindow converts a 1-based inclusive row slider range into the
// half-open 0-based window the filter evaluates.
func SliderWindow(from, to int) dataset.RowWindow {
	return dataset.RowWindow{Lo: from - 1, Hi: to}
}

// DefaultState selects every category, the full written range and the
// default row control for the configured policy.
func DefaultState(ds *dataset.Dataset, opts Options) State {
	records := ds.Records()
	lo, hi, _ := dataset.FieldRange(records, dataset.FieldWrittenTotal)

	st := State{
		Categories: dataset.DistinctCategories(records),
		Written:    dataset.WrittenRange{Min: lo, Max: hi},
	}
	switch opts.RowPolicy {
	case RowPolicyWindow:
		st.Rows = SliderWindow(1, ds.Len())
	default:
		st.Rows = dataset.RowLimit{N: opts.DefaultRowCount}
	}
	return st
}

// ReferenceLines are medians over the full dataset, independent of the
// active filter. A nil value means the column has no values.
type ReferenceLines struct {
	WrittenMedian   *float64
	InterviewMedian *float64
}

// View is the derived view-state for one filter state.
type View struct {
	DatasetID  string
	Total      int
	State      State
	Records    []dataset.Record
	Counts     []dataset.CategoryCount
	Reference  ReferenceLines
	Boxes      []dataset.BoxSummary
	Histogram  dataset.Histogram
	Categories []string
}

// Build computes the view for st. Only the row selection, category counts,
// box and histogram views follow the filter; reference lines and the
// category list always describe the whole dataset.
func Build(ds *dataset.Dataset, st State, opts Options) (View, error) {
	records := ds.Filter(st.Criteria())

	writtenMedian, err := referenceMedian(ds, dataset.FieldWrittenTotal)
	if err != nil {
		return View{}, err
	}
	interviewMedian, err := referenceMedian(ds, dataset.FieldInterviewMarks)
	if err != nil {
		return View{}, err
	}

	boxes, err := dataset.BoxSummaries(records, dataset.FieldInterviewMarks, CategoryOrder)
	if err != nil {
		return View{}, err
	}

	bins := opts.HistogramBins
	if bins < 1 {
		bins = DefaultOptions().HistogramBins
	}
	histogram, err := dataset.HistogramOf(records, dataset.FieldFinalTotal, bins)
	if err != nil {
		return View{}, err
	}

	return View{
		DatasetID: ds.ID().String(),
		Total:     ds.Len(),
		State:     st,
		Records:   records,
		Counts:    dataset.CategoryCounts(records),
		Reference: ReferenceLines{
			WrittenMedian:   writtenMedian,
			InterviewMedian: interviewMedian,
		},
		Boxes:      boxes,
		Histogram:  histogram,
		Categories: ds.Categories(),
	}, nil
}

func referenceMedian(ds *dataset.Dataset, f dataset.Field) (*float64, error) {
	m, err := ds.Median(f)
	if errors.Is(err, dataset.ErrNoValues) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
