package dataset

// WrittenRange is an inclusive bound on the written total.
type WrittenRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]. NaN is never contained.
func (w WrittenRange) Contains(v float64) bool {
	return v >= w.Min && v <= w.Max
}

// RowSelector restricts results by row position. It is either RowLimit or
// RowWindow; a nil selector applies no positional restriction.
type RowSelector interface {
	rowSelector()
}

// RowLimit keeps the first N records that pass every other predicate.
type RowLimit struct {
	N int `json:"n"`
}

// RowWindow keeps records whose position in the unfiltered input lies in
// [Lo, Hi). It is evaluated alongside the other predicates, not after them.
type RowWindow struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

func (RowLimit) rowSelector()  {}
func (RowWindow) rowSelector() {}

// Criteria is the full filter state.
type Criteria struct {
	Categories []string
	Written    WrittenRange
	Rows       RowSelector
}

// DistinctCategories returns the distinct categories of records in
// first-seen order.
func DistinctCategories(records []Record) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}

// Filter returns the records that pass every predicate of c, in input
// order. Positions for RowWindow are indices into records. An empty
// category set yields an empty result.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0)
	if len(c.Categories) == 0 {
		return out
	}

	allowed := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		allowed[cat] = true
	}

	limit := -1
	lo, hi := 0, len(records)
	switch rs := c.Rows.(type) {
	case RowLimit:
		if rs.N <= 0 {
			return out
		}
		limit = rs.N
	case RowWindow:
		lo, hi = max(rs.Lo, 0), min(rs.Hi, len(records))
	}

	// Single pass: a record must satisfy every predicate.
	for i := lo; i < hi; i++ {
		r := records[i]
		if !allowed[r.Category] || !c.Written.Contains(r.WrittenTotal) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
