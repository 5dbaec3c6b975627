package ui

import (
	"math"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"
)

// JSON cannot carry NaN, so missing scores travel as null.

type recordDTO struct {
	RollNo           string   `json:"roll_no"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	DisabilityStatus string   `json:"disability_status"`
	WrittenTotal     *float64 `json:"written_total"`
	InterviewMarks   *float64 `json:"interview_marks"`
	FinalTotal       *float64 `json:"final_total"`
	Rank             int      `json:"rank"`
}

type rowsDTO struct {
	Policy string `json:"policy"`
	Limit  int    `json:"limit,omitempty"`
	From   int    `json:"from,omitempty"`
	To     int    `json:"to,omitempty"`
}

type filtersDTO struct {
	Categories []string             `json:"categories"`
	Written    dataset.WrittenRange `json:"written"`
	Rows       rowsDTO              `json:"rows"`
}

type referenceDTO struct {
	WrittenMedian   *float64 `json:"written_median"`
	InterviewMedian *float64 `json:"interview_median"`
}

type viewDTO struct {
	DatasetID  string                  `json:"dataset_id"`
	Total      int                     `json:"total"`
	Matched    int                     `json:"matched"`
	Filters    filtersDTO              `json:"filters"`
	Categories []string                `json:"categories"`
	Records    []recordDTO             `json:"records"`
	Counts     []dataset.CategoryCount `json:"counts"`
	Reference  referenceDTO            `json:"reference"`
	Boxes      []dataset.BoxSummary    `json:"boxes"`
	Histogram  dataset.Histogram       `json:"histogram"`
}

func score(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toRecordDTOs(records []dataset.Record) []recordDTO {
	out := make([]recordDTO, len(records))
	for i, r := range records {
		out[i] = recordDTO{
			RollNo:           r.RollNo,
			Name:             r.Name,
			Category:         r.Category,
			DisabilityStatus: r.DisabilityStatus,
			WrittenTotal:     score(r.WrittenTotal),
			InterviewMarks:   score(r.InterviewMarks),
			FinalTotal:       score(r.FinalTotal),
			Rank:             r.Rank,
		}
	}
	return out
}

func toFiltersDTO(st dashboard.State) filtersDTO {
	f := filtersDTO{
		Categories: st.Categories,
		Written:    st.Written,
		Rows:       rowsDTO{Policy: "all"},
	}
	if f.Categories == nil {
		f.Categories = []string{}
	}
	switch r := st.Rows.(type) {
	case dataset.RowLimit:
		f.Rows = rowsDTO{Policy: string(dashboard.RowPolicyCount), Limit: r.N}
	case dataset.RowWindow:
		f.Rows = rowsDTO{Policy: string(dashboard.RowPolicyWindow), From: r.Lo + 1, To: r.Hi}
	}
	return f
}

func toViewDTO(v dashboard.View) viewDTO {
	return viewDTO{
		DatasetID:  v.DatasetID,
		Total:      v.Total,
		Matched:    len(v.Records),
		Filters:    toFiltersDTO(v.State),
		Categories: v.Categories,
		Records:    toRecordDTOs(v.Records),
		Counts:     v.Counts,
		Reference: referenceDTO{
			WrittenMedian:   v.Reference.WrittenMedian,
			InterviewMedian: v.Reference.InterviewMedian,
		},
		Boxes:     v.Boxes,
		Histogram: v.Histogram,
	}
}
