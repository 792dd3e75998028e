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

type HabitHandler struct {
	habits      *services.HabitService
	completions *services.CompletionService
}

func NewHabitHandler(habits *services.HabitService, completions *services.CompletionService) *HabitHandler {
	return &HabitHandler{
		habits:      habits,
		completions: completions,
	}
}

type toggleRequest struct {
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	ActualValue string `json:"actual_value"`
	Notes       string `json:"notes"`
}

// todayHabit is a habit joined with its completion state for the current
// date, the shape the daily checklist renders from.
type todayHabit struct {
	*domain.Habit
	Completed   bool   `json:"completed"`
	ActualValue string `json:"actual_value,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/initialize", h.Initialize)

	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.GET("/today", h.Today)
		habits.GET("/:id", h.Get)
		habits.POST("/:id/toggle", h.Toggle)
	}
}

// Initialize seeds the default habit set and the day-1 progress row. Calling
// it again is a no-op that returns the existing set.
func (h *HabitHandler) Initialize(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habits, progress, err := h.habits.Initialize(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"habits":   habits,
		"progress": progress,
	})
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.habits.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.habits.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "habit belongs to another user"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Today(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habits, err := h.habits.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	completions, err := h.completions.Today(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	byHabit := make(map[string]*domain.Completion, len(completions))
	for _, comp := range completions {
		byHabit[comp.HabitID] = comp
	}

	out := make([]todayHabit, 0, len(habits))
	for _, habit := range habits {
		item := todayHabit{Habit: habit}
		if comp, ok := byHabit[habit.ID]; ok {
			item.Completed = comp.Completed
			item.ActualValue = comp.ActualValue
			item.Notes = comp.Notes
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, out)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
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

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	input := services.ToggleInput{
		UserID:      userID,
		HabitID:     c.Param("id"),
		Date:        date,
		Completed:   req.Completed,
		ActualValue: req.ActualValue,
		Notes:       req.Notes,
	}

	completion, err := h.completions.Toggle(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "habit belongs to another user"})
		case errors.Is(err, domain.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, completion)
}
