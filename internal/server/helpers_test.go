package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"forum/internal/config"
	"forum/internal/middleware"
	"forum/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "test",
		JWTSecret:      testSecret,
		DBDriver:       "sqlite",
		DatabaseURL:    "file::memory:",
		AllowedOrigins: "http://localhost:3000",
		BcryptCost:     4,
		FeatureFlags:   "group_cache,auth_rate_limit",
	}
}

// newTestServer builds a full server over a private SQLite database.
func newTestServer(t *testing.T, rdb *redis.Client) *Server {
	t.Helper()
	s, err := NewServer(testConfig(), testutil.NewDB(t), rdb)
	require.NoError(t, err)
	return s
}

type apiResponse struct {
	Status int
	Body   map[string]any
	List   []any
	Token  *http.Cookie
}

// call performs a request against the app, optionally with a session cookie.
func call(t *testing.T, s *Server, method, path string, body any, token string) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{Status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &out.List))
	} else if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out.Body))
	}
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			out.Token = c
		}
	}
	return out
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"groupId", "group ID"},
		{"postId", "post ID"},
		{"commentId", "comment ID"},
		{"slug", "slug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, humanizeParam(tt.param))
	}
}

func TestInvalidRouteIDs(t *testing.T) {
	s := newTestServer(t, nil)

	res := call(t, s, http.MethodGet, "/community/groups/abc/posts", nil, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid group ID", res.Body["message"])

	token, err := s.tokens.Issue(1)
	require.NoError(t, err)
	res = call(t, s, http.MethodDelete, "/community/groups/1/posts/0", nil, token)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid post ID", res.Body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	res := call(t, s, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "up", res.Body["status"])

	res = call(t, s, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, res.Status)
	checks := res.Body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "disabled", checks["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	call(t, s, http.MethodGet, "/health/live", nil, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}
