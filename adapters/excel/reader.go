package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resultdash/internal"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a source that contains no sheets at all.
var ErrNoSheets = errors.New("source contains no sheets")

// ErrFileNotFound is returned when the source path does not exist.
var ErrFileNotFound = errors.New("file not found")

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader that picks the format from the file extension
func NewDataReader(filePath string, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logger.With("DataReader")}
}

// ReadWorkbook reads every sheet of the source in file order. A CSV file
// is a single sheet named after the file.
func (r *DataReader) ReadWorkbook() (*Workbook, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, r.filePath)
		}
		return nil, err
	}

	var (
		wb  *Workbook
		err error
	)
	switch r.fileType {
	case "csv":
		wb, err = r.readCSV()
	default:
		wb, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	return wb, nil
}

func (r *DataReader) readExcel() (*Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	r.logger.Debug("Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	wb := &Workbook{Path: r.filePath}
	for _, name := range f.GetSheetList() {
		readStart := time.Now()
		// Raw values keep number formats (thousands separators, fixed
		// decimals) from leaking into the numeric columns.
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		r.logger.Debug("Sheet %q read in %.2fms (%d rows)", name, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
		wb.Sheets = append(wb.Sheets, splitHeader(name, rows))
	}
	return wb, nil
}

func (r *DataReader) readCSV() (*Workbook, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	wb := &Workbook{Path: r.filePath}
	if len(rows) == 0 {
		return wb, nil
	}
	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	wb.Sheets = append(wb.Sheets, splitHeader(name, rows))
	return wb, nil
}

// splitHeader treats the first row as the header. A sheet with no rows has
// no headers, which the loader reports as a schema failure.
func splitHeader(name string, rows [][]string) SheetData {
	sheet := SheetData{Name: name}
	if len(rows) == 0 {
		return sheet
	}
	sheet.Headers = make([]string, len(rows[0]))
	for i, header := range rows[0] {
		sheet.Headers[i] = strings.TrimSpace(header)
	}
	sheet.Rows = rows[1:]
	return sheet
}
