package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cleanreports/internal/domain"
	"cleanreports/internal/service"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyIdentity = "identity"
	ContextKeyToken    = "access_token"
)

// LoginPath is where browser sessions are sent when they are missing or expired.
const LoginPath = "/login"

// SessionToken returns the access token from the Authorization header, falling
// back to the session cookie.
func SessionToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, identity *domain.Identity, token string) {
	c.Set(ContextKeyUserID, identity.UserID)
	c.Set(ContextKeyEmail, identity.Email)
	c.Set(ContextKeyIdentity, identity)
	c.Set(ContextKeyToken, token)
}

// AuthMiddleware guards JSON routes: requests without a valid session get 401.
func AuthMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		identity, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		setIdentity(c, identity, token)
		c.Next()
	}
}

// RequireSession guards HTML routes: requests without a valid session are
// redirected to the login page.
func RequireSession(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		identity, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		setIdentity(c, identity, token)
		c.Next()
	}
}

// GetUserID extracts the user ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}

// GetIdentity extracts the signed-in identity from the Gin context.
func GetIdentity(c *gin.Context) (*domain.Identity, error) {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	return val.(*domain.Identity), nil
}
