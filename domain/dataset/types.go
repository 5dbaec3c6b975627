package dataset

import (
	"math"
	"strconv"
	"strings"

	"resultdash/domain/core"
)

// Field names a source column. Values are the exact, case-sensitive
// spreadsheet headers.
type Field string

const (
	FieldRollNo           Field = "Roll_No"
	FieldName             Field = "Name"
	FieldCategory         Field = "Comm"
	FieldDisabilityStatus Field = "PwBD"
	FieldWrittenTotal     Field = "W_total"
	FieldInterviewMarks   Field = "PT_Marks"
	FieldFinalTotal       Field = "F_Total"
	FieldRank             Field = "Rank"
)

// RequiredColumns lists the columns every source sheet must carry, in
// record field order.
var RequiredColumns = []Field{
	FieldRollNo,
	FieldName,
	FieldCategory,
	FieldDisabilityStatus,
	FieldWrittenTotal,
	FieldInterviewMarks,
	FieldFinalTotal,
	FieldRank,
}

// NumericFields are the fields MedianOf, FieldRange and HistogramOf accept.
var NumericFields = []Field{
	FieldWrittenTotal,
	FieldInterviewMarks,
	FieldFinalTotal,
	FieldRank,
}

// ParseNumericField resolves a numeric field by its column name.
func ParseNumericField(s string) (Field, error) {
	for _, f := range NumericFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", unknownField(s)
}

// Record is one candidate result row. Missing numeric cells hold NaN,
// a missing rank holds 0.
type Record struct {
	RollNo           string  `json:"roll_no"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	DisabilityStatus string  `json:"disability_status"`
	WrittenTotal     float64 `json:"written_total"`
	InterviewMarks   float64 `json:"interview_marks"`
	FinalTotal       float64 `json:"final_total"`
	Rank             int     `json:"rank"`
}

// Value returns the numeric value of f for this record. Missing values,
// including a missing rank, read as NaN.
func (r Record) Value(f Field) (float64, error) {
	switch f {
	case FieldWrittenTotal:
		return r.WrittenTotal, nil
	case FieldInterviewMarks:
		return r.InterviewMarks, nil
	case FieldFinalTotal:
		return r.FinalTotal, nil
	case FieldRank:
		if r.Rank == 0 {
			return math.NaN(), nil
		}
		return float64(r.Rank), nil
	}
	return math.NaN(), unknownField(string(f))
}

// Defaults holds the replacement values for missing categorical cells.
type Defaults struct {
	Category         string
	DisabilityStatus string
}

// DefaultNormalization is the stock replacement policy.
var DefaultNormalization = Defaults{
	Category:         "Open",
	DisabilityStatus: "No",
}

// Apply fills missing categorical fields. Blank and whitespace-only cells
// count as missing; every other field passes through untouched.
func (d Defaults) Apply(r Record) Record {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = d.Category
	}
	if strings.TrimSpace(r.DisabilityStatus) == "" {
		r.DisabilityStatus = d.DisabilityStatus
	}
	return r
}

// SheetInfo describes one source sheet that contributed to a Dataset.
type SheetInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// Dataset is the immutable, concatenated result table. Construct it once
// with New and hand it to every consumer explicitly.
type Dataset struct {
	id      core.ID
	source  string
	sheets  []SheetInfo
	records []Record
}

// New builds a Dataset, copying its inputs so later mutation of the
// caller's slices cannot leak in.
func New(source string, sheets []SheetInfo, records []Record) *Dataset {
	ds := &Dataset{
		source:  source,
		sheets:  append([]SheetInfo(nil), sheets...),
		records: append([]Record(nil), records...),
	}
	ds.id = core.NewContentID(fingerprint(ds.sheets, ds.records))
	return ds
}

// ID is derived from the normalized content, so two loads of the same
// file share it.
func (d *Dataset) ID() core.ID { return d.id }

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// At returns the record at position i in concatenation order.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of all records in concatenation order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Sheets returns the contributing sheets in iteration order.
func (d *Dataset) Sheets() []SheetInfo {
	return append([]SheetInfo(nil), d.sheets...)
}

// Filter applies c to the full dataset.
func (d *Dataset) Filter(c Criteria) []Record {
	return Filter(d.records, c)
}

// Median returns the median of f over the full dataset.
func (d *Dataset) Median(f Field) (float64, error) {
	return MedianOf(d.records, f)
}

// Categories returns the distinct categories in first-seen order.
func (d *Dataset) Categories() []string {
	return DistinctCategories(d.records)
}

func fingerprint(sheets []SheetInfo, records []Record) []byte {
	var b strings.Builder
	for _, s := range sheets {
		b.WriteString(s.Name)
		b.WriteByte(0x1e)
		b.WriteString(strconv.Itoa(s.Rows))
		b.WriteByte(0x1d)
	}
	for _, r := range records {
		for _, part := range []string{
			r.RollNo,
			r.Name,
			r.Category,
			r.DisabilityStatus,
			strconv.FormatFloat(r.WrittenTotal, 'g', -1, 64),
			strconv.FormatFloat(r.InterviewMarks, 'g', -1, 64),
			strconv.FormatFloat(r.FinalTotal, 'g', -1, 64),
			strconv.Itoa(r.Rank),
		} {
			b.WriteString(part)
			b.WriteByte(0x1f)
		}
		b.WriteByte(0x1e)
	}
	return []byte(b.String())
}
