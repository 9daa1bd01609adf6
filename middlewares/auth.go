package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/models"
	"github.com/frazhaidry/DebugDairy/utils"
)

// userKey is the gin context key the resolved caller is stored under.
const userKey = "user"

// UserLookup resolves a token subject against the credential store.
type UserLookup func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// RequireAuth reads the session cookie, verifies the token and resolves the
// caller. A token referencing a nonexistent user fails like any other bad
// token: always 401, never a hint about why.
func RequireAuth(secret string, lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			utils.AbortMessage(c, http.StatusUnauthorized, "Authentication token missing")
			return
		}

		userID, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			utils.AbortMessage(c, http.StatusUnauthorized, "Authentication failed")
			return
		}

		user, err := lookup(c.Request.Context(), userID)
		if err != nil {
			utils.AbortMessage(c, http.StatusUnauthorized, "Authentication failed")
			return
		}

		c.Set(userKey, *user)
		c.Next()
	}
}

// CurrentUser returns the caller attached by RequireAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
