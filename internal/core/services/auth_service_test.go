package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
)

func TestAuthService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := services.NewAuthService(repo)

	user, err := svc.Register(context.Background(), services.RegisterInput{
		Email:     "jess@rise66.app",
		Password:  "password123",
		FirstName: "Jess",
		LastName:  "Lee",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jess@rise66.app", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must be hashed")
	assert.NoError(t, user.CheckPassword("password123"))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	repo := newMockUserRepo()
	svc := services.NewAuthService(repo)

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), services.RegisterInput{
			Email:     "not-an-email",
			Password:  "password123",
			FirstName: "A",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(context.Background(), services.RegisterInput{
			Email:     "a@rise66.app",
			Password:  "short",
			FirstName: "A",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		input := services.RegisterInput{
			Email:     "dup@rise66.app",
			Password:  "password123",
			FirstName: "A",
		}
		_, err := svc.Register(context.Background(), input)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := services.NewAuthService(repo)

	registered, err := svc.Register(context.Background(), services.RegisterInput{
		Email:     "kim@rise66.app",
		Password:  "password123",
		FirstName: "Kim",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "kim@rise66.app", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "kim@rise66.app", "wrong-pass-123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@rise66.app", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
