package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/services"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const secret = "test-secret-middleware"
	const issuer = "test-issuer"

	repo := &fakeUserRepo{users: map[string]*domain.User{
		"user-123": {ID: "user-123", Email: "a@b.com"},
	}}
	tokenService := services.NewTokenService(secret, issuer, time.Hour, repo)

	setupRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(AuthMiddleware(tokenService))
		router.GET("/protected", func(c *gin.Context) {
			userID, ok := GetUserID(c)
			if !ok {
				c.String(http.StatusInternalServerError, "user missing from context")
				return
			}
			c.String(http.StatusOK, "Hello "+userID)
		})
		return router
	}

	do := func(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Success: Valid Token", func(t *testing.T) {
		router := setupRouter()

		token, err := tokenService.GenerateToken("user-123")
		assert.NoError(t, err)

		w := do(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello user-123", w.Body.String())
	})

	t.Run("Fail: Missing Header", func(t *testing.T) {
		w := do(setupRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Wrong Scheme", func(t *testing.T) {
		token, _ := tokenService.GenerateToken("user-123")
		w := do(setupRouter(), "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Garbage Token", func(t *testing.T) {
		w := do(setupRouter(), "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Token For Deleted User", func(t *testing.T) {
		token, _ := tokenService.GenerateToken("ghost-user")
		w := do(setupRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
