package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/little-lemon-app/internal/auth"
	"github.com/franciscosanchezn/little-lemon-app/internal/services"
	"github.com/gin-gonic/gin"
)

// SessionAuth validates the Bearer session token minted at onboarding and
// checks the persisted login flag, so a logout invalidates every
// outstanding token immediately.
func SessionAuth(tokens *auth.SessionTokenGenerator, sessions services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondWithAuthError(c, http.StatusUnauthorized, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondWithAuthError(c, http.StatusUnauthorized, "invalid_request",
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondWithAuthError(c, http.StatusUnauthorized, "invalid_token",
				"Bearer token is empty")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			respondWithAuthError(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		// The token is only as good as the stored session
		if !sessions.IsLoggedIn() {
			respondWithAuthError(c, http.StatusUnauthorized, "session_expired",
				"No active session. Complete onboarding to sign in again.")
			return
		}

		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set("userEmail", sub)
		}
		if name, ok := claims["name"].(string); ok && name != "" {
			c.Set("userName", name)
		}

		c.Next()
	}
}

// respondWithAuthError responds with RFC 6750 compliant error format
func respondWithAuthError(c *gin.Context, status int, errorCode, description string) {
	c.JSON(status, gin.H{
		"error":             errorCode,
		"error_description": description,
	})
	c.Abort()
}
