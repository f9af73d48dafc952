package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/services"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c, rec
}

func TestBindPage(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/posts", 10, 0},
		{"explicit", "/posts?limit=25&offset=50", 25, 50},
		{"limit capped", "/posts?limit=500", 100, 0},
		{"zero limit falls back", "/posts?limit=0", 10, 0},
		{"negative values fall back", "/posts?limit=-5&offset=-5", 10, 0},
		{"garbage falls back", "/posts?limit=abc&offset=xyz", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, tt.url)
			page := bindPage(c)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestParseID(t *testing.T) {
	c, _ := testContext(t, "/users/7")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	id, ok := parseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		c, rec := testContext(t, "/users/"+raw)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := parseID(c, "id")
		assert.False(t, ok, "raw=%q", raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "raw=%q", raw)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("post %w", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: not yours", services.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("like %w", services.ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: bad date", services.ErrInvalidInput), http.StatusBadRequest},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, rec := testContext(t, "/x")
		respondError(c, tt.err)
		assert.Equal(t, tt.code, rec.Code, "err=%v", tt.err)
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	c, rec := testContext(t, "/x")
	respondError(c, fmt.Errorf("pq: connection refused host=db.internal"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db.internal")
}
