package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(secret string, captured *uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewJWTAuth(&JWTConfig{Secret: secret}), func(c *gin.Context) {
		*captured = GetUserID(c)
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthRoundTrip(t *testing.T) {
	var captured uint
	router := newAuthRouter("test-secret", &captured)

	token, err := GenerateToken(42, "alice@example.com", "test-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), captured)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	var captured uint
	router := newAuthRouter("test-secret", &captured)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, captured)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	var captured uint
	router := newAuthRouter("test-secret", &captured)

	token, err := GenerateToken(42, "alice@example.com", "other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, captured)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	var captured uint
	router := newAuthRouter("test-secret", &captured)

	token, err := GenerateToken(42, "alice@example.com", "test-secret", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserIDUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, GetUserID(c))
}
