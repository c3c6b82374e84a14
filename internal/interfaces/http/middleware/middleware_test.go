package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/auth"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEnforcer struct {
	allowed bool
	err     error
	role    string
}

func (e *stubEnforcer) Enforce(role, resource, action string) (bool, error) {
	e.role = role
	return e.allowed, e.err
}

// identityEcho returns the identity middleware put into the context.
func identityEcho(c *gin.Context) {
	userID, _ := c.Get(constants.ContextKeyUserID)
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"role":    c.GetString(constants.ContextKeyUserRole),
	})
}

func newAuthEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtSvc := auth.NewJWTService("test-secret", 5)
	mw := NewAuthMiddleware(jwtSvc, logger.NewNop())

	r := gin.New()
	r.GET("/private", mw.RequireAuth(), identityEcho)
	r.GET("/public", mw.OptionalAuth(), identityEcho)
	return r, jwtSvc
}

func TestRequireAuth(t *testing.T) {
	r, jwtSvc := newAuthEngine(t)
	token, err := jwtSvc.Generate(7, "chef@example.com", constants.RoleChef)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{name: "bearer token", header: "Bearer " + token, status: http.StatusOK},
		{name: "cookie token", cookie: token, status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "bad scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"role":"chef"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r, _ := newAuthEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":null,"role":""}`, w.Body.String())
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		enforcer *stubEnforcer
		authed   bool
		status   int
	}{
		{name: "allowed", enforcer: &stubEnforcer{allowed: true}, authed: true, status: http.StatusOK},
		{name: "denied", enforcer: &stubEnforcer{}, authed: true, status: http.StatusForbidden},
		{name: "enforcer error", enforcer: &stubEnforcer{err: errors.New("boom")}, authed: true, status: http.StatusInternalServerError},
		{name: "anonymous", enforcer: &stubEnforcer{allowed: true}, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewPermissionMiddleware(tt.enforcer, logger.NewNop())
			r := gin.New()
			r.GET("/menus", func(c *gin.Context) {
				if tt.authed {
					c.Set(constants.ContextKeyUserID, uint(2))
					c.Set(constants.ContextKeyUserRole, constants.RoleChef)
				}
				c.Next()
			}, mw.RequirePermission("menu", "create"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus", nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.authed {
				assert.Equal(t, constants.RoleChef, tt.enforcer.role)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)

	r = gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func TestRateLimiter(t *testing.T) {
	tests := []struct {
		name     string
		limiter  *stubLimiter
		nilLimit bool
		userID   uint
		wantCode int
		wantKey  string
	}{
		{name: "allowed by user", limiter: &stubLimiter{allow: true}, userID: 7, wantCode: http.StatusOK, wantKey: "user:7"},
		{name: "denied", limiter: &stubLimiter{allow: false}, userID: 7, wantCode: http.StatusTooManyRequests, wantKey: "user:7"},
		{name: "anonymous keyed by ip", limiter: &stubLimiter{allow: true}, wantCode: http.StatusOK, wantKey: "ip:192.0.2.1"},
		{name: "limiter error fails open", limiter: &stubLimiter{err: errors.New("redis down")}, userID: 7, wantCode: http.StatusOK, wantKey: "user:7"},
		{name: "disabled", nilLimit: true, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rl *RateLimiter
			if tt.nilLimit {
				rl = NewRateLimiter(nil, logger.NewNop())
			} else {
				rl = NewRateLimiter(tt.limiter, logger.NewNop())
			}

			r := gin.New()
			r.POST("/quote", func(c *gin.Context) {
				if tt.userID != 0 {
					c.Set(constants.ContextKeyUserID, tt.userID)
				}
				c.Next()
			}, rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodPost, "/quote", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusTooManyRequests {
				assert.Equal(t, "60", w.Header().Get("Retry-After"))
			}
			if !tt.nilLimit {
				require.Len(t, tt.limiter.keys, 1)
				assert.Equal(t, tt.wantKey, tt.limiter.keys[0])
			}
		})
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugw(msg string, _ ...any)  { l.lines = append(l.lines, "debug:"+msg) }
func (l *recordingLogger) Infow(msg string, _ ...any)   { l.lines = append(l.lines, "info:"+msg) }
func (l *recordingLogger) Warnw(msg string, _ ...any)   { l.lines = append(l.lines, "warn:"+msg) }
func (l *recordingLogger) Errorw(msg string, _ ...any)  { l.lines = append(l.lines, "error:"+msg) }
func (l *recordingLogger) With(...any) logger.Interface { return l }

func TestLogger_QuietPaths(t *testing.T) {
	log := &recordingLogger{}
	r := gin.New()
	r.Use(Logger(log, "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/health", "/boom", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []string{"error:request failed", "warn:request rejected"}, log.lines)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
