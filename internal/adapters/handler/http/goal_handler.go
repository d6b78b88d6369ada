package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triptailor/triptailor/internal/adapters/handler/http/middleware"
	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/services"
)

const dateLayout = "2006-01-02"

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

type createGoalRequest struct {
	Name      string `json:"name" binding:"required"`
	Cadence   string `json:"cadence"`
	StartDate string `json:"start_date" binding:"required"`
}

type updateGoalRequest struct {
	Name    string `json:"name"`
	Cadence string `json:"cadence"`
}

type toggleRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
		goals.POST("/:id/toggle", h.Toggle)
		goals.GET("/:id/streak", h.Streak)
		goals.GET("/:id/completions", h.Completions)
	}
}

func badRequestGoalError(err error) bool {
	return errors.Is(err, domain.ErrGoalNameEmpty) ||
		errors.Is(err, domain.ErrGoalNameTooLong) ||
		errors.Is(err, domain.ErrInvalidCadence) ||
		errors.Is(err, domain.ErrInvalidStartDate)
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
		return
	}

	goal, err := h.svc.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:    userID,
		Name:      req.Name,
		Cadence:   req.Cadence,
		StartDate: startDate,
	})
	if err != nil {
		if badRequestGoalError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Update(c.Request.Context(), services.UpdateGoalInput{
		ID:      c.Param("id"),
		UserID:  userID,
		Name:    req.Name,
		Cadence: req.Cadence,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		if badRequestGoalError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	completed, streak, err := h.svc.ToggleCompletion(c.Request.Context(), c.Param("id"), userID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		case errors.Is(err, domain.ErrCompletionBeforeStart), errors.Is(err, domain.ErrCompletionInFuture):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed":      completed,
		"current_streak": streak,
	})
}

func (h *GoalHandler) Streak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	streak, err := h.svc.CurrentStreak(c.Request.Context(), c.Param("id"), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_streak": streak})
}

func (h *GoalHandler) Completions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	month := time.Now().UTC()
	if monthStr := c.Query("month"); monthStr != "" {
		var err error
		month, err = time.Parse("2006-01", monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, expected YYYY-MM"})
			return
		}
	}

	days, err := h.svc.CompletionsForMonth(c.Request.Context(), c.Param("id"), userID, month)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	formatted := make([]string, 0, len(days))
	for _, d := range days {
		formatted = append(formatted, d.Format(dateLayout))
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month.Format("2006-01"),
		"days":  formatted,
	})
}
