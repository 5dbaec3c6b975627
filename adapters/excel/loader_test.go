package excel

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"resultdash/domain/dataset"
	"resultdash/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []interface{}{"Roll_No", "Name", "Comm", "PwBD", "W_total", "PT_Marks", "F_Total", "Rank"}

type testSheet struct {
	name string
	rows [][]interface{}
}

func writeWorkbook(t *testing.T, sheets ...testSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func quietLoader() *Loader {
	return NewLoader(DefaultExcelConfig(), internal.NewLogger(internal.LogLevelError))
}

func threeSheetWorkbook(t *testing.T) string {
	return writeWorkbook(t,
		testSheet{name: "Page1", rows: [][]interface{}{
			header,
			{1001, "Asha", "", "", 900, 180, 1080, 1},
			{1002, "Bilal", "OBC", "No", 880, 190, 1070, 2},
		}},
		testSheet{name: "Page2", rows: [][]interface{}{
			header,
			{1003, "Chitra", "SC", "Yes", 860, 170, 1030, 3},
			{1004, "Dev", "", "No", 850, 175, 1025, 4},
			{1005, "Esha", "EWS", "", 840, 160, 1000, 5},
		}},
		testSheet{name: "Page3", rows: [][]interface{}{
			header,
			{1006, "Farid", "ST", "No", 830, 150, 980, 6},
		}},
	)
}

func TestLoadConcatenatesSheetsInOrder(t *testing.T) {
	path := threeSheetWorkbook(t)

	ds, err := quietLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 6, ds.Len())

	var rolls []string
	for _, r := range ds.Records() {
		rolls = append(rolls, r.RollNo)
	}
	assert.Equal(t, []string{"1001", "1002", "1003", "1004", "1005", "1006"}, rolls)

	assert.Equal(t, []dataset.SheetInfo{
		{Name: "Page1", Rows: 2},
		{Name: "Page2", Rows: 3},
		{Name: "Page3", Rows: 1},
	}, ds.Sheets())

	assert.Equal(t, "Open", ds.At(0).Category)
	assert.Equal(t, "Open", ds.At(3).Category)
	assert.Equal(t, "No", ds.At(0).DisabilityStatus)
	assert.Equal(t, "No", ds.At(4).DisabilityStatus)
	assert.Equal(t, 900.0, ds.At(0).WrittenTotal)
	assert.Equal(t, 6, ds.At(5).Rank)
}

func TestLoadThenFilterOpenCategory(t *testing.T) {
	ds, err := quietLoader().Load(context.Background(), threeSheetWorkbook(t))
	require.NoError(t, err)

	got := ds.Filter(dataset.Criteria{
		Categories: []string{"Open"},
		Written:    dataset.WrittenRange{Min: 0, Max: 1000},
		Rows:       dataset.RowLimit{N: 10},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "1001", got[0].RollNo)
	assert.Equal(t, "1004", got[1].RollNo)
}

func TestLoadIsIdempotent(t *testing.T) {
	path := threeSheetWorkbook(t)

	first, err := quietLoader().Load(context.Background(), path)
	require.NoError(t, err)
	second, err := quietLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, first.ID(), second.ID())
}

func TestLoadNormalizedFieldsNeverMissing(t *testing.T) {
	ds, err := quietLoader().Load(context.Background(), threeSheetWorkbook(t))
	require.NoError(t, err)

	for _, r := range ds.Records() {
		assert.NotEmpty(t, r.Category, "roll %s", r.RollNo)
		assert.NotEmpty(t, r.DisabilityStatus, "roll %s", r.RollNo)
	}
}

func TestLoadMissingColumnIsSchemaError(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "Good", rows: [][]interface{}{header, {1, "A", "SC", "No", 800, 150, 950, 1}}},
		testSheet{name: "Bad", rows: [][]interface{}{
			{"Roll_No", "Name", "PwBD", "W_total", "PT_Marks", "F_Total"},
			{2, "B", "No", 700, 140, 840},
		}},
	)

	_, err := quietLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrSchema))

	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "Bad", schemaErr.Sheet)
	assert.Equal(t, []dataset.Field{dataset.FieldCategory, dataset.FieldRank}, schemaErr.Missing)
}

func TestLoadHeaderNamesAreCaseSensitive(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "S", rows: [][]interface{}{
		{"Roll_No", "Name", "comm", "PwBD", "W_total", "PT_Marks", "F_Total", "Rank"},
	}})

	_, err := quietLoader().Load(context.Background(), path)
	assert.True(t, errors.Is(err, dataset.ErrSchema))
}

func TestLoadMissingFileIsLoadError(t *testing.T) {
	_, err := quietLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrLoad))
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestLoadUnreadableFileIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := quietLoader().Load(context.Background(), path)
	assert.True(t, errors.Is(err, dataset.ErrLoad))
}

func TestLoadEmptyCSVHasNoSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := quietLoader().Load(context.Background(), path)
	assert.True(t, errors.Is(err, dataset.ErrLoad))
	assert.True(t, errors.Is(err, ErrNoSheets))
}

func TestLoadCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	content := "Rank,Roll_No,Name,Comm,PwBD,W_total,PT_Marks,F_Total,Extra\n" +
		"1,11,Ira,,,812,193,1005,x\n" +
		"2,12,Jai,SC,Yes,790,201,991,y\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := quietLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []dataset.SheetInfo{{Name: "results", Rows: 2}}, ds.Sheets())

	first := ds.At(0)
	assert.Equal(t, "11", first.RollNo)
	assert.Equal(t, "Open", first.Category)
	assert.Equal(t, "No", first.DisabilityStatus)
	assert.Equal(t, 812.0, first.WrittenTotal)
	assert.Equal(t, 1, first.Rank)
}

func TestLoadSkipsBlankRowsAndKeepsMissingScores(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "S", rows: [][]interface{}{
		header,
		{1, "A", "SC", "No", 800, "", 950, 1},
		{},
		{2, "B", "ST", "No", 780, 150, 930, 2},
	}})

	ds, err := quietLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.True(t, math.IsNaN(ds.At(0).InterviewMarks))
	assert.Equal(t, "2", ds.At(1).RollNo)
}

func TestLoadRejectsNonNumericScore(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "S", rows: [][]interface{}{
		header,
		{1, "A", "SC", "No", "absent", 150, 950, 1},
	}})

	_, err := quietLoader().Load(context.Background(), path)
	require.Error(t, err)

	var loadErr *dataset.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "S", loadErr.Sheet)
	assert.Equal(t, 2, loadErr.Row)
	assert.Equal(t, dataset.FieldWrittenTotal, loadErr.Column)
}

func TestLoadRejectsNonFiniteScore(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "S", rows: [][]interface{}{
		header,
		{1, "A", "SC", "No", 800, "Inf", 950, 1},
	}})

	_, err := quietLoader().Load(context.Background(), path)

	var loadErr *dataset.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, dataset.FieldInterviewMarks, loadErr.Column)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietLoader().Load(ctx, threeSheetWorkbook(t))
	assert.True(t, errors.Is(err, context.Canceled))
}
