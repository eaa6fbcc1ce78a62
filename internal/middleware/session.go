package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleopatra/internal/session"
)

// CookieName carries the session token. HttpOnly, so scripts never see it.
const CookieName = "session"

// Resolve looks up the session for the request cookie and injects userId,
// userRole and the raw token into the context. It never aborts; the gates in
// auth.go decide whether an anonymous request may proceed.
func Resolve(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			c.Next()
			return
		}
		if sess == nil {
			c.Next()
			return
		}

		userID, err := primitive.ObjectIDFromHex(sess.UserID)
		if err != nil {
			log.Error().Str("userId", sess.UserID).Msg("session holds invalid user id")
			_ = store.Delete(c.Request.Context(), token)
			c.Next()
			return
		}

		c.Set("userId", userID)
		c.Set("userRole", sess.Role)
		c.Set("sessionToken", token)
		c.Next()
	}
}

// UserID returns the authenticated user's id from the context.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// UserRole returns the authenticated user's role from the context.
func UserRole(c *gin.Context) string {
	return c.GetString("userRole")
}
