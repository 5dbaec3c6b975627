package dataset

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// CategoryCount is the number of records carrying one category, plus its
// share of the counted sequence.
type CategoryCount struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
}

// CategoryCounts counts records per category, ordered by descending count
// with ties kept in first-seen order.
func CategoryCounts(records []Record) []CategoryCount {
	index := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(counts)
			index[r.Category] = i
			counts = append(counts, CategoryCount{Category: r.Category})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})

	total := float64(len(records))
	for i := range counts {
		counts[i].Share = float64(counts[i].Count) / total
	}
	return counts
}

// Values returns the non-NaN values of f in record order.
func Values(records []Record, f Field) ([]float64, error) {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		v, err := r.Value(f)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// MedianOf returns the median of f. Even-length inputs average the two
// middle values; missing (NaN) values are skipped.
func MedianOf(records []Record, f Field) (float64, error) {
	values, err := Values(records, f)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	return stats.Median(values)
}

// FieldRange returns the minimum and maximum of f. ok is false when no
// record carries a value.
func FieldRange(records []Record, f Field) (lo, hi float64, ok bool) {
	values, err := Values(records, f)
	if err != nil || len(values) == 0 {
		return 0, 0, false
	}
	lo, _ = stats.Min(values)
	hi, _ = stats.Max(values)
	return lo, hi, true
}
