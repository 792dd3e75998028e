package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"email":      "morgan@rise66.app",
		"password":   "password123",
		"first_name": "Morgan",
		"last_name":  "Gray",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "morgan@rise66.app", resp.User.Email)
	assert.Equal(t, "Morgan", resp.User.FirstName)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "dup@rise66.app")

	w := env.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"email":      "dup@rise66.app",
		"password":   "password123",
		"first_name": "Other",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already exists")
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "password123", "first_name": "A"}},
		{"bad email", gin.H{"email": "not-an-email", "password": "password123", "first_name": "A"}},
		{"short password", gin.H{"email": "a@rise66.app", "password": "short", "first_name": "A"}},
		{"missing first name", gin.H{"email": "a@rise66.app", "password": "password123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, "POST", "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t, "login@rise66.app")

	w := env.do(t, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "login@rise66.app",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "login2@rise66.app")

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/auth/login", "", gin.H{
			"email":    "login2@rise66.app",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := env.do(t, "POST", "/api/v1/auth/login", "", gin.H{
			"email":    "nobody@rise66.app",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
