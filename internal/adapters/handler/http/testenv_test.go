package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rise66app/rise66-api/internal/adapters/handler/http/middleware"
	"github.com/rise66app/rise66-api/internal/adapters/repository"
	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
	"github.com/rise66app/rise66-api/internal/core/workers"
)

// testEnv wires the full handler stack over in-memory repositories so each
// test exercises real services end to end without Postgres or Redis.
type testEnv struct {
	router      *gin.Engine
	users       *repository.InMemoryUserRepository
	habits      *repository.InMemoryHabitRepository
	completions *repository.InMemoryCompletionRepository
	progress    *repository.InMemoryProgressRepository
	tokens      *services.TokenService

	authHandler     *AuthHandler
	habitHandler    *HabitHandler
	journalHandler  *JournalHandler
	progressHandler *ProgressHandler
	aiHandler       *AIHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	habits := repository.NewInMemoryHabitRepository()
	completions := repository.NewInMemoryCompletionRepository(habits)
	streaks := repository.NewInMemoryStreakRepository()
	journal := repository.NewInMemoryJournalRepository()
	progress := repository.NewInMemoryProgressRepository()
	tx := repository.NewMemoryTransactor()

	worker := workers.NewStreakWorker(habits, progress, completions)

	tokens := services.NewTokenService("test-secret", "rise66-api", 15*time.Minute, users)
	authSvc := services.NewAuthService(users)
	habitSvc := services.NewHabitService(habits, progress)
	completionSvc := services.NewCompletionService(completions, streaks, habits, tx, worker)
	journalSvc := services.NewJournalService(journal)
	progressSvc := services.NewProgressService(progress, streaks, completions, habits)
	affirmationSvc := services.NewAffirmationService(offlineGenerator{})

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(authSvc, tokens)
	authHandler.RegisterRoutes(apiV1)

	habitHandler := NewHabitHandler(habitSvc, completionSvc)
	journalHandler := NewJournalHandler(journalSvc)
	progressHandler := NewProgressHandler(progressSvc)
	aiHandler := NewAIHandler(affirmationSvc)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	habitHandler.RegisterRoutes(protected)
	journalHandler.RegisterRoutes(protected)
	progressHandler.RegisterRoutes(protected)
	aiHandler.RegisterRoutes(protected)

	return &testEnv{
		router:      router,
		users:       users,
		habits:      habits,
		completions: completions,
		progress:    progress,
		tokens:      tokens,

		authHandler:     authHandler,
		habitHandler:    habitHandler,
		journalHandler:  journalHandler,
		progressHandler: progressHandler,
		aiHandler:       aiHandler,
	}
}

// offlineGenerator simulates an unreachable LLM provider so the AI endpoints
// serve their fallback copy.
type offlineGenerator struct{}

func (offlineGenerator) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("no provider available")
}

// registerUser creates an account through the API and returns its id + token.
func (env *testEnv) registerUser(t *testing.T, email string) (string, string) {
	t.Helper()

	w := env.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"email":      email,
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp.User.ID, resp.Token
}

// initialize seeds the default habit set for the user behind token.
func (env *testEnv) initialize(t *testing.T, token string) {
	t.Helper()
	w := env.do(t, "POST", "/api/v1/initialize", token, nil)
	require.Equal(t, 201, w.Code, w.Body.String())
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) firstHabitID(t *testing.T, userID string) string {
	t.Helper()
	habits, err := env.habits.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, habits)
	return habits[0].ID
}

func (env *testEnv) habitIDByKind(t *testing.T, userID string, kind domain.HabitKind) string {
	t.Helper()
	habit, err := env.habits.GetByKind(context.Background(), userID, kind)
	require.NoError(t, err)
	return habit.ID
}
