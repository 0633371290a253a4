package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backend "github.com/bendright/backend"
)

type testApp struct {
	app      *fiber.App
	users    *fakeUsers
	sessions *fakeSessions
	auther   *backend.Auther
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := newTestConfig()
	users := newFakeUsers()
	sessions := newFakeSessions()

	auther := backend.NewAuthenticator(backend.NewStoreIdentityProvider(users), cfg)

	app := fiber.New()
	gate := backend.ProtectedRoute(cfg, auther.TokenService(), users)
	backend.RegisterRoutes(app,
		backend.NewAuthController(users, auther),
		backend.NewSessionController(sessions, cfg),
		gate,
	)

	return &testApp{app: app, users: users, sessions: sessions, auther: auther}
}

func (ta *testApp) request(t *testing.T, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := ta.app.Test(req, 30000)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	} else if len(raw) > 0 && raw[0] == '[' {
		var list []map[string]any
		require.NoError(t, json.Unmarshal(raw, &list))
		decoded["items"] = list
	}

	return res, decoded
}

func TestSignupLoginSessionFlow(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "alice",
		"email":    "a@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "alice", body["name"])
	assert.Equal(t, "a@x.com", body["email"])

	signupToken, _ := body["token"].(string)
	require.NotEmpty(t, signupToken)

	res, body = ta.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "a@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "alice", body["name"])

	loginToken, _ := body["token"].(string)
	require.NotEmpty(t, loginToken)
	assert.NotEqual(t, signupToken, loginToken)

	// same subject behind both tokens
	first, err := ta.auther.TokenService().Validate(signupToken)
	require.NoError(t, err)
	second, err := ta.auther.TokenService().Validate(loginToken)
	require.NoError(t, err)
	assert.Equal(t, first.UserID(), second.UserID())

	res, body = ta.request(t, http.MethodPost, "/api/sessions", loginToken, fiber.Map{
		"status": "completed",
		"date":   "2026-08-27",
		"asana":  "downward dog",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, "COMPLETED", body["status"])
	assert.Equal(t, "downward dog", body["asana"])

	res, body = ta.request(t, http.MethodGet, "/api/sessions", loginToken, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	items, _ := body["items"].([]map[string]any)
	require.Len(t, items, 1)
	assert.Equal(t, "downward dog", items[0]["asana"])
}

func TestSignup_DuplicateEmailIgnoresCase(t *testing.T) {
	ta := newTestApp(t)

	res, _ := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "alice",
		"email":    "A@B.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res, body := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "impostor",
		"email":    "a@b.com",
		"password": "password-2",
	})
	require.Equal(t, fiber.StatusConflict, res.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "email already registered", body["message"])
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	ta := newTestApp(t)

	res, _ := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "alice",
		"email":    "a@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	res, wrongPassword := ta.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "a@x.com",
		"password": "not-the-password",
	})
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	res, unknownEmail := ta.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestSessions_RequireAuthentication(t *testing.T) {
	ta := newTestApp(t)

	t.Run("no header", func(t *testing.T) {
		res, body := ta.request(t, http.MethodGet, "/api/sessions", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	t.Run("garbage token", func(t *testing.T) {
		res, _ := ta.request(t, http.MethodGet, "/api/sessions", "not-a-token", nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestSessions_TokenForDeletedUserIsRejected(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "alice",
		"email":    "a@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	userID := int64(body["user_id"].(float64))
	require.NoError(t, ta.users.Delete(context.Background(), userID))

	// the token still verifies cryptographically, the subject is gone
	_, err := ta.auther.TokenService().Validate(token)
	require.NoError(t, err)

	res, body = ta.request(t, http.MethodGet, "/api/sessions", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestSessions_BadPayload(t *testing.T) {
	ta := newTestApp(t)

	res, body := ta.request(t, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     "alice",
		"email":    "a@x.com",
		"password": "password-1",
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	token, _ := body["token"].(string)

	t.Run("unknown status", func(t *testing.T) {
		res, _ := ta.request(t, http.MethodPost, "/api/sessions", token, fiber.Map{
			"status": "done",
			"date":   "2026-08-27",
			"asana":  "crow pose",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("bad date", func(t *testing.T) {
		res, _ := ta.request(t, http.MethodPost, "/api/sessions", token, fiber.Map{
			"status": "completed",
			"date":   "27/08/2026",
			"asana":  "crow pose",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})
}
