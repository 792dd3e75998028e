package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rise66app/rise66-api/internal/adapters/handler/http/middleware"
	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
)

const maxRecentEntries = 30

type JournalHandler struct {
	svc *services.JournalService
}

func NewJournalHandler(svc *services.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

type saveJournalRequest struct {
	Mood          string `json:"mood" binding:"required"`
	Content       string `json:"content"`
	AIAffirmation string `json:"ai_affirmation"`
}

func (h *JournalHandler) RegisterRoutes(router *gin.RouterGroup) {
	journal := router.Group("/journal")
	{
		journal.GET("/today", h.Today)
		journal.POST("", h.Save)
		journal.GET("/recent", h.Recent)
	}
}

func (h *JournalHandler) Today(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	entry, err := h.svc.Today(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// No entry yet today is a normal state, not an error.
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *JournalHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req saveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.SaveJournalInput{
		UserID:        userID,
		Mood:          domain.Mood(req.Mood),
		Content:       req.Content,
		AIAffirmation: req.AIAffirmation,
	}

	entry, err := h.svc.Save(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Recent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxRecentEntries {
		limit = maxRecentEntries
	}

	entries, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
