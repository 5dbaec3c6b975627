package ui

import (
	stderrors "errors"
	"net/http"

	"resultdash/domain/dataset"
	"resultdash/internal/dashboard"
	"resultdash/internal/errors"
	"resultdash/internal/report"

	"github.com/gin-gonic/gin"
)

func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": gin.H{
		"code":    errors.GetCode(err),
		"message": err.Error(),
	}})
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.respondError(c, errors.NotFound("route "+c.Request.URL.Path))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"dataset_id": s.dataset.ID().String(),
		"source":     s.dataset.Source(),
		"records":    s.dataset.Len(),
		"sheets":     s.dataset.Sheets(),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.dataset.Categories()})
}

func (s *Server) handleRecords(c *gin.Context) {
	st, err := s.parseState(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	records := s.dataset.Filter(st.Criteria())
	c.JSON(http.StatusOK, gin.H{
		"filters": toFiltersDTO(st),
		"matched": len(records),
		"records": toRecordDTOs(records),
	})
}

func (s *Server) handleCounts(c *gin.Context) {
	st, err := s.parseState(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	records := s.dataset.Filter(st.Criteria())
	c.JSON(http.StatusOK, gin.H{
		"filters": toFiltersDTO(st),
		"total":   len(records),
		"counts":  dataset.CategoryCounts(records),
	})
}

func (s *Server) handleMedian(c *gin.Context) {
	name := c.DefaultQuery("field", string(dataset.FieldWrittenTotal))
	field, err := dataset.ParseNumericField(name)
	if err != nil {
		s.respondError(c, errors.Wrap(errors.InvalidInput(err.Error()), "unsupported median field"))
		return
	}

	// The reference median always covers the full dataset.
	median, err := s.dataset.Median(field)
	switch {
	case stderrors.Is(err, dataset.ErrNoValues):
		c.JSON(http.StatusOK, gin.H{"field": field, "median": nil})
	case err != nil:
		s.respondError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"field": field, "median": median})
	}
}

func (s *Server) buildView(c *gin.Context) (dashboard.View, bool) {
	st, err := s.parseState(c)
	if err != nil {
		s.respondError(c, err)
		return dashboard.View{}, false
	}
	view, err := dashboard.Build(s.dataset, st, s.options)
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to build view"))
		return dashboard.View{}, false
	}
	return view, true
}

func (s *Server) handleView(c *gin.Context) {
	view, ok := s.buildView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toViewDTO(view))
}

func (s *Server) handleReport(c *gin.Context) {
	view, ok := s.buildView(c)
	if !ok {
		return
	}
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(view)))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(view))
}
