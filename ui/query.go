package ui

import (
	"math"
	"strconv"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"
	"resultdash/internal/errors"

	"github.com/gin-gonic/gin"
)

// parseState reads the filter controls from the query string. Controls
// that are absent take their dashboard defaults.
//
//	category=Open&category=SC   allowed categories; a bare "category=" selects none
//	written_min, written_max    inclusive written-marks bounds
//	limit                       count policy: first N matches
//	rank_from, rank_to          window policy: 1-based inclusive slider positions
func (s *Server) parseState(c *gin.Context) (dashboard.State, error) {
	st := dashboard.DefaultState(s.dataset, s.options)

	if values, present := c.GetQueryArray("category"); present {
		st.Categories = make([]string, 0, len(values))
		for _, v := range values {
			if v != "" {
				st.Categories = append(st.Categories, v)
			}
		}
	}

	var err error
	if st.Written.Min, err = floatParam(c, "written_min", st.Written.Min); err != nil {
		return st, err
	}
	if st.Written.Max, err = floatParam(c, "written_max", st.Written.Max); err != nil {
		return st, err
	}

	_, hasLimit := c.GetQuery("limit")
	_, hasFrom := c.GetQuery("rank_from")
	_, hasTo := c.GetQuery("rank_to")
	switch {
	case hasLimit && (hasFrom || hasTo):
		return st, errors.InvalidInput("limit cannot be combined with rank_from/rank_to")
	case hasLimit:
		n, err := intParam(c, "limit", 0)
		if err != nil {
			return st, err
		}
		st.Rows = dataset.RowLimit{N: n}
	case hasFrom || hasTo:
		from, err := intParam(c, "rank_from", 1)
		if err != nil {
			return st, err
		}
		to, err := intParam(c, "rank_to", s.dataset.Len())
		if err != nil {
			return st, err
		}
		st.Rows = dashboard.SliderWindow(from, to)
	}

	return st, nil
}

func floatParam(c *gin.Context, key string, fallback float64) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInputf("%s must be a number, got %q", key, raw)
	}
	return v, nil
}

func intParam(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInputf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
