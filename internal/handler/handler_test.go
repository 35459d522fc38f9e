package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/proxy"
	"github.com/iamngoni/media-savant/internal/repository"
	"github.com/iamngoni/media-savant/internal/usecase"
)

const testCookieName = "ms_session"

type testEnv struct {
	router   http.Handler
	upstream *httptest.Server
}

// newTestEnv wires the full handler stack against a stub upstream and an
// in-memory session store. Options mutate the config before wiring.
func newTestEnv(t *testing.T, upstreamHandler http.Handler, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	upstream := httptest.NewServer(upstreamHandler)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:          8080,
			ClientName:    "media-savant",
			DeviceName:    "media-savant",
			ClientVersion: "0.1.0",
		},
		Auth: config.AuthConfig{
			CookieName: testCookieName,
			SessionTTL: time.Hour,
		},
		RateLimit: config.RateLimitConfig{PerSecond: 1000, Burst: 2000},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.Nop()
	validate := validator.New()
	sessions := repository.NewSessionMemoryRepository()
	client := jellyfin.NewClient(nil)
	sessionUsecase := usecase.NewSessionUsecase(sessions, client, &logger, cfg)
	forwarder := proxy.NewForwarder(nil, &logger, cfg)

	router := NewRouter(
		cfg,
		&logger,
		NewAuthHandler(sessionUsecase, validate, &logger, cfg),
		NewProxyHandler(sessionUsecase, forwarder, &logger, cfg),
		NewSetupHandler(client, validate, &logger, cfg),
	)

	return &testEnv{router: router, upstream: upstream}
}

// jellyfinStub mimics the upstream endpoints the handlers exercise.
func jellyfinStub() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/Users/AuthenticateByName", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"User":        map[string]string{"Id": "1", "Name": "u"},
			"AccessToken": "tok",
		})
	})
	mux.HandleFunc("/System/Info/Public", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ServerName":"stub","Version":"10.9"}`))
	})
	return mux
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

// login performs the login flow and returns the session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	w := e.postJSON("/auth/login",
		`{"server_url":"`+e.upstream.URL+`","username":"u","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
