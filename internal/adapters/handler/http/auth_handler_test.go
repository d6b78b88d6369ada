package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/triptailor/triptailor/internal/adapters/handler/http"
	"github.com/triptailor/triptailor/internal/adapters/handler/http/middleware"
	"github.com/triptailor/triptailor/internal/adapters/repository"
	"github.com/triptailor/triptailor/internal/core/services"
)

// setupAuthRouter wires the real token middleware so the whole
// register-login-me path is covered end to end.
func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryUserRepository()
	authService := services.NewAuthService(repo)
	tokenService := services.NewTokenService("test-secret", "triptailor-test", time.Hour, repo)
	handler := adapterHTTP.NewAuthHandler(authService, tokenService)

	r := gin.New()
	group := r.Group("/api/v1")
	handler.RegisterRoutes(group)

	protected := group.Group("")
	protected.Use(middleware.AuthMiddleware(tokenService))
	handler.RegisterProtectedRoutes(protected)

	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		router := setupAuthRouter()

		w := doJSON(router, "POST", "/api/v1/auth/register", "",
			`{"email": "alice@example.com", "password": "secret-password", "display_name": "Alice"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"alice@example.com"`)
		assert.Contains(t, w.Body.String(), `"display_name":"Alice"`)
		assert.NotContains(t, w.Body.String(), "secret-password")
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("Fail: 409 Duplicate Email", func(t *testing.T) {
		router := setupAuthRouter()
		body := `{"email": "alice@example.com", "password": "secret-password"}`

		w := doJSON(router, "POST", "/api/v1/auth/register", "", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "POST", "/api/v1/auth/register", "", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Fail: 400 Invalid Email", func(t *testing.T) {
		router := setupAuthRouter()

		w := doJSON(router, "POST", "/api/v1/auth/register", "",
			`{"email": "nope", "password": "secret-password"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Short Password", func(t *testing.T) {
		router := setupAuthRouter()

		w := doJSON(router, "POST", "/api/v1/auth/register", "",
			`{"email": "alice@example.com", "password": "short"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	router := setupAuthRouter()

	w := doJSON(router, "POST", "/api/v1/auth/register", "",
		`{"email": "bob@example.com", "password": "secret-password"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var token string

	t.Run("Success: Login returns token and user", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", "",
			`{"email": "bob@example.com", "password": "secret-password"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, "bob@example.com", resp.User.Email)

		token = resp.Token
	})

	t.Run("Fail: 401 Wrong Password", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", "",
			`{"email": "bob@example.com", "password": "wrong-password"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: 401 Unknown Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/login", "",
			`{"email": "ghost@example.com", "password": "secret-password"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success: Me with Bearer token", func(t *testing.T) {
		require.NotEmpty(t, token)

		req, _ := http.NewRequest("GET", "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"bob@example.com"`)
	})

	t.Run("Fail: 401 Me Without Token", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/me", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: 401 Me With Garbage Token", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
