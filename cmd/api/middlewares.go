package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"fym/proj/internal/api/notify"
	"fym/proj/internal/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			allowed := c.limiter.Allow()
			mu.Unlock()
			if !allowed {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Metrics records every request by method and final status.
func (app *Application) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, status, time.Since(start))
	})
}

type CtxKey string

const (
	CtxKeyUser    CtxKey = "user"
	CtxKeySession CtxKey = "session"
)

// SessionTokenHeader carries a freshly issued token back to a client that
// arrived without one.
const SessionTokenHeader = "X-Session-Token"

var errInvalidToken = errors.New("invalid or expired token")

func (app *Application) issueSessionToken(sid string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(app.cfg.Server.SessionTTL).Unix(),
	})
	return token.SignedString([]byte(app.cfg.AppSecret))
}

func (app *Application) parseSessionToken(token string) (string, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		return []byte(app.cfg.AppSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsedToken.Valid {
		return "", errInvalidToken
	}
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errInvalidToken
	}
	return sid, nil
}

// Authenticate resolves the session id and the account it points at. A
// request without a token gets a new anonymous session.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			const bearerLength = len("Bearer ")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < bearerLength+1 {
				app.log.Warn("Invalid auth header", "header", authHeader)
				app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
				return
			}
			var err error
			sid, err = app.parseSessionToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				app.log.Warn("Invalid or expired token")
				app.Http.Unauthorized(w, r, "Invalid or expired token")
				return
			}
		} else {
			sid = uuid.NewString()
			token, err := app.issueSessionToken(sid)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			w.Header().Set(SessionTokenHeader, token)
		}

		user, err := app.accounts.CurrentUser(r.Context(), sid)
		if err != nil {
			app.log.Error("Failed to get user", "error", err)
			app.Http.ServerError(w, r, err, "")
			return
		}
		ctx := context.WithValue(r.Context(), CtxKeySession, sid)
		ctx = context.WithValue(ctx, CtxKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFromCtx(r) == nil {
			app.Http.Notification(w, r, notify.SignInRequired, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
