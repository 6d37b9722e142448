package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/server"
	"github.com/pageza/recipes/backend/internal/testhelpers"
)

const password = "password123"

func request(t *testing.T, h http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.SetBasicAuth(user, password)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestRecipeLifecycle runs the full stack against PostgreSQL with the Redis
// recipe cache enabled
func TestRecipeLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgres(t)
	redisClient := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		JWTSecret: "integration-secret",
		TokenTTL:  time.Hour,
		CacheTTL:  time.Minute,
	}
	h := server.New(cfg, db, redisClient, logging.Discard()).Handler()

	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		w := request(t, h, http.MethodPost, "/api/register", "", map[string]string{"email": email, "password": password})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := request(t, h, http.MethodPost, "/api/recipe/new", "alice@example.com", map[string]any{
		"name":        "Shakshuka",
		"category":    "Breakfast",
		"description": "Eggs poached in spiced tomato sauce",
		"ingredients": []string{"eggs", "tomatoes", "cumin"},
		"directions":  []string{"Simmer the sauce", "Crack in the eggs", "Cover until set"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/recipe/%d", created.ID)

	// first read fills the cache, second is served from it
	for i := 0; i < 2; i++ {
		w = request(t, h, http.MethodGet, path, "bob@example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Shakshuka")
	}

	w = request(t, h, http.MethodGet, "/api/recipe/search?category=breakfast", "bob@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shakshuka")

	w = request(t, h, http.MethodGet, "/api/recipe/search?name=SHAK", "bob@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shakshuka")

	assert.Equal(t, http.StatusForbidden, request(t, h, http.MethodDelete, path, "bob@example.com", nil).Code)
	assert.Equal(t, http.StatusNoContent, request(t, h, http.MethodDelete, path, "alice@example.com", nil).Code)

	// the cached copy was invalidated by the delete
	assert.Equal(t, http.StatusNotFound, request(t, h, http.MethodGet, path, "alice@example.com", nil).Code)
}
