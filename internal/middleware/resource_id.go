package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKeyResourceID = "resource_id"

// ResolveResourceID parses the :id path parameter. A malformed id resolves to
// uuid.Nil, which matches no row, so callers see the same NOT_FOUND_OR_FORBIDDEN
// as for a foreign id and authentication is still checked first.
func ResolveResourceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			id = uuid.Nil
		}
		c.Set(contextKeyResourceID, id)
		c.Next()
	}
}

// ResourceID returns the id stored by ResolveResourceID, parsing the path
// parameter directly when the middleware did not run.
func ResourceID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(contextKeyResourceID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
