package excel

import (
	"resultdash/domain/dataset"
)

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath string           `json:"file_path"`
	Defaults dataset.Defaults `json:"defaults"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet loading
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		FilePath: "upsc_2022.xlsx",
		Defaults: dataset.DefaultNormalization,
	}
}
