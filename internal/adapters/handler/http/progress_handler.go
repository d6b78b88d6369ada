package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triptailor/triptailor/internal/adapters/handler/http/middleware"
	"github.com/triptailor/triptailor/internal/core/progress"
	"github.com/triptailor/triptailor/internal/core/services"
)

// Max 1 year per chart query.
const maxChartRangeDays = 366

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	prog := r.Group("/progress")
	{
		prog.GET("/chart", h.Chart)
		prog.GET("/summary", h.Summary)
		prog.GET("/calendar", h.Calendar)
	}
}

// parseRange reads start_date/end_date query params. The defaults mirror the
// dashboard: end today, start seven days earlier.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	var start, end time.Time
	var err error

	if endStr := c.Query("end_date"); endStr == "" {
		end = time.Now().UTC()
	} else {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return start, end, false
		}
	}

	if startStr := c.Query("start_date"); startStr == "" {
		start = end.AddDate(0, 0, -6)
	} else {
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return start, end, false
		}
	}

	if daysDiff := end.Sub(start).Hours() / 24; daysDiff > maxChartRangeDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return start, end, false
	}

	return start, end, true
}

func (h *ProgressHandler) Chart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	granularity := progress.Granularity(c.DefaultQuery("granularity", string(progress.GranularityDay)))

	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	buckets, err := h.svc.Chart(c.Request.Context(), userID, start, end, granularity)
	if err != nil {
		if errors.Is(err, progress.ErrInvalidRange) || errors.Is(err, progress.ErrInvalidGranularity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute chart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"buckets":     buckets,
	})
}

func (h *ProgressHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ProgressHandler) Calendar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var start, end time.Time
	var err error

	if endStr := c.Query("end_date"); endStr == "" {
		end = time.Now().UTC()
	} else {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
	}

	// The default window is the year leading up to the resolved end, so a
	// request carrying only end_date is anchored to that end.
	if startStr := c.Query("start_date"); startStr == "" {
		start = end.AddDate(-1, 0, 0)
	} else {
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	days, err := h.svc.Calendar(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, progress.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute calendar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
