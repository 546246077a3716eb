package middleware

import (
	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting back-office user's ID in the
// Gin context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")

// actorHeader is the header the back-office gateway forwards the operator ID in.
const actorHeader = "X-Actor-ID"

const systemActorID = "system"

// ActorMiddleware resolves the acting operator from the request headers and
// stores it in the context for audit fields. Requests without the header are
// attributed to the system actor.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = systemActorID
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting operator ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}

	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
