package auth

import (
	"net/http"
	"net/url"
	"strings"

	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"

	// UserIDKey is the gin context key holding the authenticated user's ID.
	UserIDKey = "userID"
)

// AuthMiddleware inspects the session cookie or an Authorization bearer token
// and sets the userID if present and valid, but does not fail if it is
// missing or invalid.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, fromCookie := bearerToken(c), false
		if tokenString == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
				tokenString, fromCookie = cookie, true
			}
		}

		if tokenString != "" {
			userID, err := jwt.ParseToken(tokenString, secret)
			if err == nil {
				c.Set(UserIDKey, userID)
			} else if fromCookie {
				ClearSession(c)
			}
		}
		c.Next()
	}
}

// RequireLogin aborts requests without an authenticated user. Page requests are
// redirected to the login form, JSON and AJAX requests get a 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); ok {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's ID, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// SetSession stores token in the session cookie.
func SetSession(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(jwt.TokenTTL.Seconds()), "/", "", secure, true)
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
