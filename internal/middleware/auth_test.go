package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"chitchat-backend/internal/auth"
)

func setupAuthRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware(tokens))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("userID")})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthRouter(auth.NewTokenManager("test-secret", "chitchat"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := setupAuthRouter(auth.NewTokenManager("test-secret", "chitchat"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := setupAuthRouter(auth.NewTokenManager("test-secret", "chitchat"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "chitchat")
	router := setupAuthRouter(tokens)

	token, err := tokens.Generate(42, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":42`)
}
