package middleware

import (
	"strings"                     // String manipulation
	"watch_store/internal/identity" // Token verification

	"github.com/gin-gonic/gin" // Gin web framework
)

// VerifiedEmailKey is the gin context key holding the verified email set by
// AuthGate. Absent when the request carried no verifiable token.
const VerifiedEmailKey = "verifiedEmail"

// AuthGate inspects the Authorization header and, when a bearer token
// verifies, attaches the resulting email to the request context. It never
// aborts: verification is advisory and failures downgrade to "no identity".
func AuthGate(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			// A failed verification attaches nothing; the request proceeds
			if email, err := verifier.Verify(c.Request.Context(), tokenStr); err == nil {
				c.Set(VerifiedEmailKey, email)
			}
		}
		c.Next() // Always proceed to the next handler
	}
}

// VerifiedEmail returns the email AuthGate attached, or "" when the request
// is unauthenticated.
func VerifiedEmail(c *gin.Context) string {
	return c.GetString(VerifiedEmailKey)
}
