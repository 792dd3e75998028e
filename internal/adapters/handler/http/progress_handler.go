package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rise66app/rise66-api/internal/adapters/handler/http/middleware"
	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	progress := router.Group("/progress")
	{
		progress.GET("", h.Overview)
		progress.GET("/weekly", h.Weekly)
		progress.GET("/habits/:kind", h.HabitChart)
	}
}

func (h *ProgressHandler) Overview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProgressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "progress not initialized"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *ProgressHandler) Weekly(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	// Default window is the 7 days ending today.
	weekStart := time.Now().UTC().AddDate(0, 0, -6)
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	counts, err := h.svc.Weekly(c.Request.Context(), userID, weekStart)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

func (h *ProgressHandler) HabitChart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	kind := domain.HabitKind(c.Param("kind"))

	points, err := h.svc.HabitChart(c.Request.Context(), userID, kind)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownHabitKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown habit kind"})
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, points)
}
