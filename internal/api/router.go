package api

import (
	"net/http" // HTTP status codes

	"watch_store/internal/identity"   // Token verification
	"watch_store/internal/middleware" // AuthGate and admin guard
	"watch_store/internal/store"      // Document store interfaces

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps carries the explicitly constructed collaborators every handler needs.
// Redis may be nil, which disables caching.
type Deps struct {
	Users     store.Users       // Users collection
	Watches   store.Watches     // Catalog collection
	Purchases store.Purchases   // Orders collection
	Reviews   store.Reviews     // Reviews collection
	Verifier  identity.Verifier // Bearer token verifier
	Redis     *redis.Client     // Optional cache
}

// RegisterRoutes wires the full route table onto r. Every request passes
// through AuthGate; the dashboard group additionally sits behind the
// admin guard.
func RegisterRoutes(r *gin.Engine, d Deps) {
	// AuthGate runs on every request and never blocks one
	r.Use(middleware.AuthGate(d.Verifier))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello watch lover!")
	})

	// Public catalog and review routes
	r.GET("/watches", ListWatchesHandler(d.Watches, d.Redis))
	r.GET("/watch/:id", GetWatchHandler(d.Watches, d.Redis))
	r.GET("/reviews", ListReviewsHandler(d.Reviews))
	r.POST("/review", AddReviewHandler(d.Reviews))

	// Customer purchase routes (ownership is self-asserted by email)
	r.POST("/purchase", CreatePurchaseHandler(d.Purchases))
	r.GET("/myPurchases/:email", MyPurchasesHandler(d.Purchases))
	r.DELETE("/purchase/:id", CancelPurchaseHandler(d.Purchases))

	// User registry routes
	r.POST("/users", RegisterUserHandler(d.Users))
	r.PUT("/users", UpsertUserHandler(d.Users))
	r.GET("/users/:email", AdminStatusHandler(d.Users, d.Redis))
	r.PUT("/users/admin", GrantAdminHandler(NewRoleGranter(d.Users), d.Redis))

	// Admin dashboard routes (protected, admin only)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAdmin(d.Users))
	dashboard.GET("/allPurchases", AllPurchasesHandler(d.Purchases))             // List all orders
	dashboard.PUT("/purchaseStatus/:id", ShipPurchaseHandler(d.Purchases))       // Ship an order
	dashboard.DELETE("/purchase/:id", CancelPurchaseHandler(d.Purchases))        // Admin cancel
	dashboard.POST("/addProduct", AddWatchHandler(d.Watches, d.Redis))           // Add a product
	dashboard.DELETE("/watches/:id", DeleteWatchHandler(d.Watches, d.Redis))     // Delete a product
}
