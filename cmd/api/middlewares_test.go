package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fym/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequiredAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, &models.Account{
			ID:       "1",
			Username: "test",
			Email:    "test@gmail.com",
		}))
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		app.requireAuthenticatedUser(okHandler).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Data, "notification")
	})
}

func TestAuthenticate(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	var gotSid string
	var gotUser *models.Account
	handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSid = sessionIDFromCtx(r)
		gotUser = userFromCtx(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous gets a session token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		token := rec.Header().Get(SessionTokenHeader)
		require.NotEmpty(t, token)
		assert.NotEmpty(t, gotSid)
		assert.Nil(t, gotUser)

		sid, err := app.parseSessionToken(token)
		require.NoError(t, err)
		assert.Equal(t, gotSid, sid)
	})

	t.Run("token keeps the session", func(t *testing.T) {
		token, err := app.issueSessionToken("fixed-sid")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fixed-sid", gotSid)
		assert.Empty(t, rec.Header().Get(SessionTokenHeader))
	})

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{"malformed header", "Token abc", http.StatusBadRequest},
		{"empty bearer", "Bearer ", http.StatusBadRequest},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tc.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}

	t.Run("foreign secret", func(t *testing.T) {
		other := NewTestApplication(t, nil, nil)
		other.cfg.AppSecret = "another-secret"
		token, err := other.issueSessionToken("sid")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecoverer(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	for _, value := range []any{"plain string", assert.AnError} {
		rec := httptest.NewRecorder()
		app.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(value)
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, decodeResponse(t, rec).Success)
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.Limiter.Enabled = true
	cfg.Limiter.Rps = 1
	cfg.Limiter.Burst = 1
	app := NewTestApplication(t, cfg, nil)
	handler := app.RateLimiter(okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	h := app.routes()

	rec := doRequest(t, h, http.MethodGet, "/api/v1/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fym_api_requests_total"))
}
