package excel

// SheetData is one sheet as read from the source: trimmed headers and
// the raw cell strings of every data row below them.
type SheetData struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Workbook is every sheet of a source file in the file's sheet order.
type Workbook struct {
	Path   string
	Sheets []SheetData
}
