package api

import (
	"context"  // Context for store operations
	"errors"   // Sentinel errors
	"net/http" // HTTP status codes
	"sync"     // Mutex serializing role grants
	"time"     // Time durations

	"watch_store/internal/domain"     // Importing domain models
	"watch_store/internal/middleware" // Verified identity lookup
	"watch_store/internal/store"      // Document store interfaces
	"watch_store/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

const (
	adminKeyPrefix = "admin:user:"    // Cache key prefix for admin lookups
	adminTTL       = 60 * time.Second // Admin flag cache lifetime
)

// ErrAccessDenied is returned when a role grant is attempted without a
// verified identity.
var ErrAccessDenied = errors.New("access denied")

// RegisterUserHandler stores a user profile on first sign-up. An optional
// password field is hashed before storage; the role field is never taken
// from the client.
func RegisterUserHandler(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Bind JSON request to struct
		if err := c.ShouldBindJSON(&user); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if user.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		user.Role = "" // Role is granted only by an existing admin
		if user.Password != "" {
			// Hash the password before it touches the store
			hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.Password = string(hash)
		}
		result, err := users.Insert(c.Request.Context(), user)
		if err != nil {
			// Duplicate email trips the unique index
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusOK, result) // Return the store insert result
	}
}

// UpsertUserHandler stores or refreshes a user profile keyed by email, the
// idempotent repeat sign-in path.
func UpsertUserHandler(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Bind JSON request to struct
		if err := c.ShouldBindJSON(&user); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if user.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		result, err := users.UpsertByEmail(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}
		c.JSON(http.StatusOK, result) // Return the store upsert result
	}
}

// AdminStatusHandler reports whether the given email holds the admin role.
// Public; clients use it to decide whether to show the dashboard. An
// unknown email simply reports false.
func AdminStatusHandler(users store.Users, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		email := c.Param("email")
		cacheKey := adminKeyPrefix + email
		var cached bool
		// Try the cached flag first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"admin": cached})
			return
		}
		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		isAdmin := user.IsAdmin() // False for a missing record or any non-admin role
		_ = utils.SetCache(ctx, rdb, cacheKey, isAdmin, adminTTL)
		c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
	}
}

// RoleGranter performs the admin-role grant. The check of the requester's
// role and the write of the target's role run under a single-writer mutex,
// closing the check-then-act window between the two store operations.
type RoleGranter struct {
	mu    sync.Mutex
	users store.Users
}

// NewRoleGranter creates a granter over the users collection.
func NewRoleGranter(users store.Users) *RoleGranter {
	return &RoleGranter{users: users}
}

// Grant sets the target's role to admin iff the requester's stored role is
// exactly admin. An empty requester means no verified identity and yields
// ErrAccessDenied. A non-admin requester gets a zero-effect result, and a
// missing target reports zero matches.
func (g *RoleGranter) Grant(ctx context.Context, requester, target string) (*store.UpdateResult, error) {
	if requester == "" {
		return nil, ErrAccessDenied
	}
	g.mu.Lock() // Serialize role mutations
	defer g.mu.Unlock()
	account, err := g.users.FindByEmail(ctx, requester)
	if err != nil {
		return nil, err
	}
	// Strict read-only equality on the stored role; nothing is written to
	// the requester's own record
	if !account.IsAdmin() {
		return &store.UpdateResult{}, nil
	}
	return g.users.SetRole(ctx, target, domain.RoleAdmin)
}

// GrantAdminRequest names the account to promote
type GrantAdminRequest struct {
	Email string `json:"email" binding:"required"` // Target email must be provided
}

// GrantAdminHandler promotes the target email to admin, gated on the
// verified identity attached by the auth middleware.
func GrantAdminHandler(granter *RoleGranter, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := middleware.VerifiedEmail(c) // Identity attached by AuthGate
		if requester == "" {
			// No verified identity, refuse before touching the payload
			c.JSON(http.StatusUnauthorized, gin.H{"message": "You don't have access to make Admin"})
			return
		}
		var req GrantAdminRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := granter.Grant(c.Request.Context(), requester, req.Email)
		if errors.Is(err, ErrAccessDenied) {
			// No verified identity present
			c.JSON(http.StatusUnauthorized, gin.H{"message": "You don't have access to make Admin"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"requester": requester,   // Verified requester email
				"target":    req.Email,   // Target email
				"error":     err.Error(), // Error message
			}).Error("Role grant failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		if result.ModifiedCount > 0 {
			// Invalidate the cached admin flag for the promoted account
			_ = utils.DeleteCache(c.Request.Context(), rdb, adminKeyPrefix+req.Email)
			logrus.WithFields(logrus.Fields{
				"requester": requester, // Verified requester email
				"target":    req.Email, // Newly promoted email
			}).Info("Admin role granted")
		}
		c.JSON(http.StatusOK, result) // Return the store update result
	}
}
