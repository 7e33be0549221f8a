package middleware

import (
	"net/http"                   // HTTP status codes
	"watch_store/internal/store" // Document store interfaces

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireAdmin checks the verified identity's role in the users collection
// on each request. Dashboard routes sit behind this guard: no verified email
// means unauthorized, anything but the admin role means forbidden.
func RequireAdmin(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := VerifiedEmail(c) // Identity attached by AuthGate
		if email == "" {
			// No verified identity, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil || !user.IsAdmin() {
			// Missing record, lookup failure, or non-admin role
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // Admin confirmed, proceed to the next handler
	}
}
