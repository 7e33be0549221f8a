package api

import (
	"net/http"                   // HTTP status codes
	"time"                       // Time durations
	"watch_store/internal/domain" // Importing domain models
	"watch_store/internal/store"  // Document store interfaces
	"watch_store/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	watchListKey   = "catalog:watches" // Cache key for the full catalog
	watchKeyPrefix = "catalog:watch:"  // Cache key prefix for single watches
	catalogTTL     = 60 * time.Second  // Catalog cache lifetime
)

// ListWatchesHandler returns every watch in the catalog
func ListWatchesHandler(watches store.Watches, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Watch
		// Try the cached catalog first
		found, err := utils.GetCache(ctx, rdb, watchListKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		result, err := watches.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watches"})
			return
		}
		_ = utils.SetCache(ctx, rdb, watchListKey, result, catalogTTL) // Cache for future requests
		c.JSON(http.StatusOK, result)
	}
}

// GetWatchHandler returns a single watch by id, or an empty body when the
// id matches nothing
func GetWatchHandler(watches store.Watches, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		cacheKey := watchKeyPrefix + id
		var cached domain.Watch
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		watch, err := watches.Get(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watch"})
			return
		}
		if watch == nil {
			c.JSON(http.StatusOK, nil) // Unknown id yields an empty body
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, watch, catalogTTL) // Cache the watch
		c.JSON(http.StatusOK, watch)
	}
}

// AddWatchHandler inserts a new product. Reached only through the admin
// dashboard group.
func AddWatchHandler(watches store.Watches, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var watch domain.Watch // Bind JSON request to struct
		if err := c.ShouldBindJSON(&watch); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := watches.Insert(c.Request.Context(), watch)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  watch.Name,  // Product name
				"error": err.Error(), // Error message
			}).Error("Failed to add product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
			return
		}
		// Invalidate the cached catalog list
		_ = utils.DeleteCache(c.Request.Context(), rdb, watchListKey)
		logrus.WithFields(logrus.Fields{
			"watch_id": result.InsertedID, // New document id
			"name":     watch.Name,        // Product name
		}).Info("Product added")
		c.JSON(http.StatusOK, result) // Return the store insert result
	}
}

// DeleteWatchHandler removes a product by id. Reached only through the
// admin dashboard group. An unknown id reports zero deletions.
func DeleteWatchHandler(watches store.Watches, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result, err := watches.Delete(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		// Invalidate both the catalog list and the single-watch entry
		_ = utils.DeleteCache(c.Request.Context(), rdb, watchListKey)
		_ = utils.DeleteCache(c.Request.Context(), rdb, watchKeyPrefix+id)
		c.JSON(http.StatusOK, result) // Return the store delete result
	}
}

// ListReviewsHandler returns every review
func ListReviewsHandler(reviews store.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := reviews.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AddReviewHandler inserts a review from any caller
func AddReviewHandler(reviews store.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review domain.Review // Bind JSON request to struct
		if err := c.ShouldBindJSON(&review); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := reviews.Insert(c.Request.Context(), review)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
			return
		}
		c.JSON(http.StatusOK, result) // Return the store insert result
	}
}
