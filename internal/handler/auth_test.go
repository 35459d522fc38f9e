package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamngoni/media-savant/internal/config"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())

	w := env.postJSON("/auth/login",
		`{"server_url":"`+env.upstream.URL+`/","username":"u","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "1", data["user_id"])
	assert.Equal(t, "u", data["username"])
	assert.Equal(t, env.upstream.URL, data["server_url"], "trailing slash stripped")
	assert.NotEmpty(t, data["session_id"])

	assert.NotContains(t, w.Body.String(), "tok", "access token never reaches the client")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, testCookieName, cookie.Name)
	assert.Equal(t, data["session_id"], cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLoginSecureCookieFlag(t *testing.T) {
	env := newTestEnv(t, jellyfinStub(), func(cfg *config.Config) {
		cfg.Auth.CookieSecure = true
	})

	cookie := env.login(t)
	assert.True(t, cookie.Secure)
}

func TestLoginInvalidPayload(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "oops"},
		{name: "missing server_url", body: `{"username":"u","password":"p"}`},
		{name: "bad server_url", body: `{"server_url":"::","username":"u","password":"p"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.postJSON("/auth/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decodeEnvelope(t, w).Success)
		})
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	w := env.postJSON("/auth/login",
		`{"server_url":"`+env.upstream.URL+`","username":"u","password":"bad"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, *resp.Error)
}

func TestLoginUpstreamUnreachable(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())

	w := env.postJSON("/auth/login",
		`{"server_url":"http://127.0.0.1:1","username":"u","password":"p"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())
	cookie := env.login(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "u", data["username"])
	assert.Equal(t, cookie.Value, data["session_id"])
	assert.NotContains(t, w.Body.String(), "tok")
}

func TestMeWithoutCookie(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())

	w := env.do(httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "missing session", *resp.Error)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())
	cookie := env.login(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logged_out":true`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge, "cookie cleared")

	// The stale cookie now resolves to "session not found", not a server error.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	w = env.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "session not found", *resp.Error)
}

func TestLogoutWithoutCookie(t *testing.T) {
	env := newTestEnv(t, jellyfinStub())

	w := env.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)
}
