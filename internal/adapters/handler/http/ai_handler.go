package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
)

// AIHandler exposes the text-generation endpoints. They never fail: when no
// provider is reachable the service substitutes its fixed fallback copy, so
// every response here is a 200.
type AIHandler struct {
	svc *services.AffirmationService
}

func NewAIHandler(svc *services.AffirmationService) *AIHandler {
	return &AIHandler{svc: svc}
}

type affirmationRequest struct {
	Mood            string `json:"mood"`
	CompletedHabits int    `json:"completed_habits"`
	TotalHabits     int    `json:"total_habits"`
	CurrentStreak   int    `json:"current_streak"`
}

type promptsRequest struct {
	Mood       string `json:"mood"`
	CurrentDay int    `json:"current_day"`
}

type analyzeRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	{
		ai.POST("/affirmation", h.Affirmation)
		ai.POST("/prompts", h.Prompts)
		ai.POST("/analyze", h.Analyze)
	}
}

func (h *AIHandler) Affirmation(c *gin.Context) {
	var req affirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.AffirmationInput{
		Mood:            domain.Mood(req.Mood),
		CompletedHabits: req.CompletedHabits,
		TotalHabits:     req.TotalHabits,
		CurrentStreak:   req.CurrentStreak,
	}

	affirmation := h.svc.DailyAffirmation(c.Request.Context(), input)

	c.JSON(http.StatusOK, gin.H{"affirmation": affirmation})
}

func (h *AIHandler) Prompts(c *gin.Context) {
	var req promptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompts := h.svc.JournalPrompts(c.Request.Context(), domain.Mood(req.Mood), req.CurrentDay)

	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

func (h *AIHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := h.svc.AnalyzeEntry(c.Request.Context(), req.Content)

	c.JSON(http.StatusOK, analysis)
}
