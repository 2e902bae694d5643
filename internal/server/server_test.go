package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app *fiber.App
	srv *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		DBDriver:  "sqlite",
		Env:       "test",
	}

	srv := NewServerWithDeps(cfg, db, rdb)
	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{app: app, srv: srv}
}

// request performs a JSON request against the test app. A non-empty token is
// sent as a bearer Authorization header.
func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// register creates an account through the API and returns its public view.
func (ts *testServer) register(t *testing.T, email, password string, role models.Role) models.PublicUser {
	t.Helper()
	resp := ts.request(t, http.MethodPost, "/register", "", fiber.Map{
		"email":    email,
		"password": password,
		"role":     string(role),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.PublicUser
	decodeJSON(t, resp, &user)
	return user
}

// login authenticates through the API and returns the session token.
func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := ts.request(t, http.MethodPost, "/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func assertErrorCode(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)

	var body models.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Error)
}
