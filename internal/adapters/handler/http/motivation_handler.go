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

type MotivationHandler struct {
	svc *services.MotivationService
}

func NewMotivationHandler(svc *services.MotivationService) *MotivationHandler {
	return &MotivationHandler{svc: svc}
}

func (h *MotivationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/motivation/generate", h.Generate)
}

func (h *MotivationHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	message, err := h.svc.MessageFor(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrCoachUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "motivation coach unavailable, try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
