package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btbrandon/Orbital-2024/config"
	"github.com/btbrandon/Orbital-2024/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)

	var seenUserID uuid.UUID
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		seenUserID = utils.GetCurrentUserID(c)
		c.Status(http.StatusOK)
	})
	return r, &seenUserID
}

func TestAuthRequired_ValidToken(t *testing.T) {
	config.Load()
	r, seenUserID := setupRouter()

	userID := uuid.New()
	token, err := utils.GenerateToken(userID, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seenUserID)
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	config.Load()
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_NotBearer(t *testing.T) {
	config.Load()
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_BadToken(t *testing.T) {
	config.Load()
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus.token.here")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
