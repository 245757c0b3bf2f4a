package auth

import (
	"context"
	"net/http"

	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// UserFinder loads users by ID.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AdminMiddleware creates a gin middleware to check for the admin flag.
// It must be used AFTER RequireLogin.
func AdminMiddleware(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			// This should not happen if RequireLogin is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		}

		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
