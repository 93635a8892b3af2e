package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/constants"
	apierrors "github.com/yukikurage/task-notes-api/internal/errors"
)

// LoadIdentity resolves the caller from the session cookie, falling back to a
// Bearer token, and stores the Actor in the context. It never aborts: an
// unresolved caller is stored as auth.Anonymous and rejected by the services.
func LoadIdentity(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.Anonymous

		session := sessions.Default(c)
		if raw, ok := session.Get(constants.ContextKeyUserID).(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				actor = auth.UserActor(id)
			}
		}

		if !actor.Authenticated() && tokens != nil {
			if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
				if a, err := tokens.Verify(token); err == nil {
					actor = a
				}
			}
		}

		c.Set(constants.ContextKeyActor, actor)
		if actor.Authenticated() {
			c.Set(constants.ContextKeyUserID, actor.UserID)
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous callers with 401. Must run after LoadIdentity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).Authenticated() {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// CurrentActor retrieves the caller stored by LoadIdentity.
func CurrentActor(c *gin.Context) auth.Actor {
	v, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return auth.Anonymous
	}
	actor, ok := v.(auth.Actor)
	if !ok {
		return auth.Anonymous
	}
	return actor
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	actor := CurrentActor(c)
	return actor.UserID, actor.Authenticated()
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
