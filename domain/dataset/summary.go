package dataset

import (
	"errors"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidBins is returned for a histogram with fewer than one bin.
var ErrInvalidBins = errors.New("histogram needs at least one bin")

// BoxSummary is the five-number summary of one category.
type BoxSummary struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}

// BoxSummaries summarizes f per category. Categories named in order come
// first (when present), the rest follow in first-seen order. Categories
// with no value for f are left out.
func BoxSummaries(records []Record, f Field, order []string) ([]BoxSummary, error) {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	listed := make(map[string]bool, len(order))
	keys := make([]string, 0, len(groups))
	for _, cat := range order {
		if _, ok := groups[cat]; ok && !listed[cat] {
			keys = append(keys, cat)
		}
		listed[cat] = true
	}
	for _, cat := range DistinctCategories(records) {
		if !listed[cat] {
			keys = append(keys, cat)
		}
	}

	out := make([]BoxSummary, 0, len(keys))
	for _, cat := range keys {
		values, err := Values(groups[cat], f)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		out = append(out, summarize(cat, values))
	}
	return out, nil
}

func summarize(category string, values []float64) BoxSummary {
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q, _ := stats.Quartile(values)

	// Quartile leaves the outer quartiles undefined for single values.
	q1, q3 := q.Q1, q.Q3
	if math.IsNaN(q1) {
		q1 = median
	}
	if math.IsNaN(q3) {
		q3 = median
	}

	return BoxSummary{
		Category: category,
		Count:    len(values),
		Min:      lo,
		Q1:       q1,
		Median:   median,
		Q3:       q3,
		Max:      hi,
	}
}

// Histogram holds equal-width bin counts. Edges has one more entry than
// Counts; the last bin is closed on the right.
type Histogram struct {
	Field  Field     `json:"field"`
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// HistogramOf bins the values of f into bins equal-width intervals spanning
// their observed range.
func HistogramOf(records []Record, f Field, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, ErrInvalidBins
	}
	values, err := Values(records, f)
	if err != nil {
		return Histogram{}, err
	}
	h := Histogram{Field: f}
	if len(values) == 0 {
		return h, nil
	}

	sort.Float64s(values)
	lo, hi := values[0], values[len(values)-1]
	if hi == lo {
		hi = lo + 1
	}

	h.Edges = floats.Span(make([]float64, bins+1), lo, hi)
	h.Edges[bins] = hi

	// stat.Histogram wants the top divider strictly above every value.
	dividers := append([]float64(nil), h.Edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, values, nil)
	h.Counts = make([]int, len(counts))
	for i, c := range counts {
		h.Counts[i] = int(c)
	}
	return h, nil
}
