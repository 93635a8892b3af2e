// Package auth resolves who is calling. Every owner-scoped operation receives
// an Actor explicitly and calls RequireUser before touching the store.
package auth

import (
	"github.com/google/uuid"
	"github.com/yukikurage/task-notes-api/internal/result"
)

// Actor is the caller's identity as established by the identity provider.
// The zero value is an anonymous caller.
type Actor struct {
	UserID uuid.UUID
}

// Anonymous is the caller with no valid session.
var Anonymous = Actor{}

// UserActor returns an authenticated actor.
func UserActor(userID uuid.UUID) Actor {
	return Actor{UserID: userID}
}

// Authenticated reports whether the actor carries a user id.
func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// RequireUser returns the caller's user id or an Unauthorized failure.
func RequireUser(a Actor) (uuid.UUID, error) {
	if !a.Authenticated() {
		return uuid.Nil, result.ErrUnauthorized
	}
	return a.UserID, nil
}
