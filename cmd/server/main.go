package main

import (
	"context"                       // context package is needed for store and Redis operations
	"log"                           // log package is needed for logging
	"watch_store/internal/api"      // Custom package for API handlers
	"watch_store/internal/config"   // Custom package for configuration
	"watch_store/internal/identity" // Custom package for token verification
	"watch_store/internal/store"    // Custom package for the document store

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the document store; this is the only fatal startup failure
	st, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to store: %v", err)
	}
	defer st.Close(context.Background()) // Disconnect on shutdown

	// Setup Redis client; caching is optional, so a dead Redis only warns
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("redis unavailable, caching disabled: %v", err)
		redisClient = nil
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// The store client runs behind a browser SPA on another origin
	r.Use(cors.Default())

	// Wire the route table with explicitly constructed collaborators
	api.RegisterRoutes(r, api.Deps{
		Users:     st.Users,                               // Users collection
		Watches:   st.Watches,                             // Catalog collection
		Purchases: st.Purchases,                           // Orders collection
		Reviews:   st.Reviews,                             // Reviews collection
		Verifier:  identity.NewJWTVerifier(cfg.AuthSecret), // Bearer token verifier
		Redis:     redisClient,                            // Optional cache
	})

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
