package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/server"
	"github.com/pageza/recipes/backend/internal/testhelpers"
)

const (
	alice    = "alice@example.com"
	bob      = "bob@example.com"
	password = "password123"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

// setupTestAPI builds the full application on a private sqlite database and
// registers alice and bob
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		CORSOrigins: []string{"http://localhost:5173"},
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	}
	srv := server.New(cfg, testhelpers.SetupTestDB(t), nil, logging.Discard())
	a := &testAPI{t: t, handler: srv.Handler()}

	for _, email := range []string{alice, bob} {
		w := a.do(http.MethodPost, "/api/register", "", map[string]string{"email": email, "password": password})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	return a
}

// do sends a request as user with Basic credentials; an empty user sends none
func (a *testAPI) do(method, path, user string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.SetBasicAuth(user, password)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) createRecipe(user string, body map[string]any) int {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/recipe/new", user, body)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID int `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func recipeBody(name, category string) map[string]any {
	return map[string]any{
		"name":        name,
		"category":    category,
		"description": "Light, aromatic and refreshing",
		"ingredients": []string{"boiled water", "honey", "fresh mint leaves"},
		"directions":  []string{"Boil water", "Pour into a mug", "Add mint and honey"},
	}
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

func jsonReader(t *testing.T, body any) io.Reader {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
