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

type TripHandler struct {
	svc *services.TripService
}

func NewTripHandler(svc *services.TripService) *TripHandler {
	return &TripHandler{svc: svc}
}

type generateTripRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Preferences []string `json:"preferences"`
}

type saveTripRequest struct {
	Destination string                `json:"destination" binding:"required"`
	StartDate   string                `json:"start_date" binding:"required"`
	EndDate     string                `json:"end_date" binding:"required"`
	Preferences []string              `json:"preferences"`
	Plan        *domain.ItineraryPlan `json:"plan" binding:"required"`
}

func (h *TripHandler) RegisterRoutes(router *gin.RouterGroup) {
	trips := router.Group("/trips")
	{
		trips.POST("/generate", h.Generate)
		trips.POST("", h.Save)
		trips.GET("", h.List)
		trips.GET("/:id", h.Get)
		trips.DELETE("/:id", h.Delete)
	}
}

func parseItineraryInput(c *gin.Context, destination, startDate, endDate string, preferences []string) (domain.ItineraryInput, bool) {
	var input domain.ItineraryInput

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
		return input, false
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
		return input, false
	}

	input = domain.ItineraryInput{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Preferences: preferences,
	}
	return input, true
}

func badRequestTripError(err error) bool {
	return errors.Is(err, domain.ErrDestinationEmpty) ||
		errors.Is(err, domain.ErrInvalidTripDates) ||
		errors.Is(err, domain.ErrEmptyItinerary)
}

func (h *TripHandler) Generate(c *gin.Context) {
	var req generateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := parseItineraryInput(c, req.Destination, req.StartDate, req.EndDate, req.Preferences)
	if !ok {
		return
	}

	plan, err := h.svc.Generate(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlannerUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "itinerary planner unavailable, try again later"})
		case badRequestTripError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *TripHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req saveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := parseItineraryInput(c, req.Destination, req.StartDate, req.EndDate, req.Preferences)
	if !ok {
		return
	}

	trip, err := h.svc.Save(c.Request.Context(), userID, input, *req.Plan)
	if err != nil {
		if badRequestTripError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	trips, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	trip, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
