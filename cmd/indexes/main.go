package main

import (
	"context"                     // Context for store operations
	"watch_store/internal/config" // Custom import path (Config)
	"watch_store/internal/store"  // Custom import path (Document store)

	"github.com/sirupsen/logrus"
)

// Main entry point for index creation
func main() {
	cfg := config.LoadConfig() // Load configuration

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to store: %v", err) // Fatal error if connection fails
	}
	defer st.Close(ctx)

	// Unique email index backs the upsert sign-in path
	if err := st.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("index creation failed: %v", err)
	}
	logrus.Info("Indexes ensured.") // Log successful index creation
}
