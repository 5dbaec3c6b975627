package excel

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"resultdash/domain/dataset"
	"resultdash/internal"
	"resultdash/ports"
)

var _ ports.DatasetLoader = (*Loader)(nil)

// Loader reads a result spreadsheet into an immutable dataset
type Loader struct {
	defaults dataset.Defaults
	logger   *internal.Logger
}

// NewLoader creates a loader using the normalization defaults in config
func NewLoader(config ExcelConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{defaults: config.Defaults, logger: logger}
}

// Load reads every sheet of path, keeps the required columns, concatenates
// the rows in sheet order and fills missing categorical values.
func (l *Loader) Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	wb, err := NewDataReader(path, l.logger).ReadWorkbook()
	if err != nil {
		return nil, &dataset.LoadError{Source: path, Err: err}
	}

	var (
		records []dataset.Record
		sheets  []dataset.SheetInfo
	)
	for _, sheet := range wb.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, &dataset.LoadError{Source: path, Err: err}
		}

		columns, err := locateColumns(sheet)
		if err != nil {
			return nil, err
		}

		sheetRecords, err := l.readRecords(path, sheet, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, sheetRecords...)
		sheets = append(sheets, dataset.SheetInfo{Name: sheet.Name, Rows: len(sheetRecords)})
		l.logger.Debug("sheet %q contributed %d records", sheet.Name, len(sheetRecords))
	}

	ds := dataset.New(path, sheets, records)
	l.logger.Info("Loaded %d records from %d sheets of %s (dataset %s)", ds.Len(), len(sheets), path, ds.ID())
	return ds, nil
}

// locateColumns maps each required field to its header position. The first
// occurrence of a duplicated header wins.
func locateColumns(sheet SheetData) (map[dataset.Field]int, error) {
	positions := make(map[string]int, len(sheet.Headers))
	for i, header := range sheet.Headers {
		if _, seen := positions[header]; !seen {
			positions[header] = i
		}
	}

	columns := make(map[dataset.Field]int, len(dataset.RequiredColumns))
	var missing []dataset.Field
	for _, field := range dataset.RequiredColumns {
		idx, ok := positions[string(field)]
		if !ok {
			missing = append(missing, field)
			continue
		}
		columns[field] = idx
	}
	if len(missing) > 0 {
		return nil, &dataset.SchemaError{Sheet: sheet.Name, Missing: missing}
	}
	return columns, nil
}

func (l *Loader) readRecords(path string, sheet SheetData, columns map[dataset.Field]int) ([]dataset.Record, error) {
	records := make([]dataset.Record, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		cell := func(f dataset.Field) string {
			idx := columns[f]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		// Spreadsheet row numbers are 1-based and the header sits on row 1.
		rowNum := i + 2
		if isBlank(row, columns) {
			l.logger.Trace("sheet %q row %d is blank, skipped", sheet.Name, rowNum)
			continue
		}

		fail := func(f dataset.Field, err error) error {
			return &dataset.LoadError{Source: path, Sheet: sheet.Name, Row: rowNum, Column: f, Err: err}
		}

		written, err := parseScore(cell(dataset.FieldWrittenTotal))
		if err != nil {
			return nil, fail(dataset.FieldWrittenTotal, err)
		}
		interview, err := parseScore(cell(dataset.FieldInterviewMarks))
		if err != nil {
			return nil, fail(dataset.FieldInterviewMarks, err)
		}
		final, err := parseScore(cell(dataset.FieldFinalTotal))
		if err != nil {
			return nil, fail(dataset.FieldFinalTotal, err)
		}
		rank, err := parseRank(cell(dataset.FieldRank))
		if err != nil {
			return nil, fail(dataset.FieldRank, err)
		}

		records = append(records, l.defaults.Apply(dataset.Record{
			RollNo:           cell(dataset.FieldRollNo),
			Name:             cell(dataset.FieldName),
			Category:         cell(dataset.FieldCategory),
			DisabilityStatus: cell(dataset.FieldDisabilityStatus),
			WrittenTotal:     written,
			InterviewMarks:   interview,
			FinalTotal:       final,
			Rank:             rank,
		}))
	}
	return records, nil
}

func isBlank(row []string, columns map[dataset.Field]int) bool {
	for _, idx := range columns {
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			return false
		}
	}
	return true
}

// parseScore returns NaN for an empty cell.
func parseScore(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseRank returns 0 for an empty cell. Integral floats ("12.0") are
// accepted since spreadsheets store every number as a float.
func parseRank(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(v), nil
}
