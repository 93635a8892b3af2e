package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/constants"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/ratelimit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIdentityRouter(tokens *auth.TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, c.Param("id"))
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", LoadIdentity(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentActor(c).UserID.String())
	})
	r.GET("/me", LoadIdentity(tokens), RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestLoadIdentity_Session(t *testing.T) {
	r := newIdentityRouter(nil)
	userID := uuid.New()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+userID.String(), nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestLoadIdentity_BearerToken(t *testing.T) {
	tokens := auth.NewTokenManager("jwt-secret", time.Hour)
	r := newIdentityRouter(tokens)
	userID := uuid.New()

	token, err := tokens.Issue(userID, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestLoadIdentity_AnonymousDoesNotAbort(t *testing.T) {
	r := newIdentityRouter(auth.NewTokenManager("jwt-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}

func TestResolveResourceID(t *testing.T) {
	r := gin.New()
	r.GET("/tasks/:id", ResolveResourceID(), func(c *gin.Context) {
		c.String(http.StatusOK, ResourceID(c).String())
	})

	id := uuid.New()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/"+id.String(), nil))
	assert.Equal(t, id.String(), w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/42", nil))
	assert.Equal(t, uuid.Nil.String(), w.Body.String())
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func newRateLimitRouter(actor auth.Actor, limiter ratelimit.Limiter) *gin.Engine {
	r := gin.New()
	r.POST("/summarize", func(c *gin.Context) {
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}, RateLimitPerUser(limiter, logger.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitPerUser(t *testing.T) {
	userID := uuid.New()

	denied := &stubLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 3 * time.Second}}
	w := httptest.NewRecorder()
	newRateLimitRouter(auth.UserActor(userID), denied).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{userID.String()}, denied.keys)

	allowed := &stubLimiter{decision: ratelimit.Decision{Allowed: true, Remaining: 4}}
	w = httptest.NewRecorder()
	newRateLimitRouter(auth.UserActor(userID), allowed).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))

	broken := &stubLimiter{err: errors.New("redis down")}
	w = httptest.NewRecorder()
	newRateLimitRouter(auth.UserActor(userID), broken).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	anon := &stubLimiter{}
	w = httptest.NewRecorder()
	newRateLimitRouter(auth.Anonymous, anon).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, anon.keys)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/missing/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/missing/1", nil)
	req.Header.Set(headerRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(headerRequestID))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/missing/:id", fields["path"])
	assert.Equal(t, "req-1", fields["request_id"])
}
