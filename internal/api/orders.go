package api

import (
	"net/http"                    // HTTP status codes
	"watch_store/internal/domain" // Importing domain models
	"watch_store/internal/store"  // Document store interfaces

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreatePurchaseHandler inserts a new purchase order. The owning email is
// taken from the payload as-is; a purchase starts with no status field.
func CreatePurchaseHandler(purchases store.Purchases) gin.HandlerFunc {
	return func(c *gin.Context) {
		var purchase domain.Purchase // Bind JSON request to struct
		if err := c.ShouldBindJSON(&purchase); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if purchase.Email == "" {
			// Every purchase is attributed to exactly one email
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		purchase.Status = "" // Status is set only by the admin ship transition
		result, err := purchases.Insert(c.Request.Context(), purchase)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": purchase.Email, // Owning customer
				"error": err.Error(),    // Error message
			}).Error("Failed to create purchase")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"purchase_id": result.InsertedID, // New document id
			"email":       purchase.Email,    // Owning customer
			"item":        purchase.Item,     // Ordered watch
		}).Info("Purchase created")
		c.JSON(http.StatusOK, result) // Return the store insert result
	}
}

// MyPurchasesHandler returns the purchases owned by the given email
func MyPurchasesHandler(purchases store.Purchases) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := purchases.ByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CancelPurchaseHandler deletes a purchase by id. Registered on both the
// customer route and the admin dashboard route; cancelling an unknown id is
// an idempotent zero-match no-op.
func CancelPurchaseHandler(purchases store.Purchases) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result, err := purchases.Delete(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel purchase"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"purchase_id": id,                  // Target document id
			"deleted":     result.DeletedCount, // Zero when the id matched nothing
		}).Info("Purchase cancelled")
		c.JSON(http.StatusOK, result) // Return the store delete result
	}
}

// ShipPurchaseHandler marks a purchase as shipped. Admin-only; shipping an
// unknown id changes nothing and reports a zero-match result.
func ShipPurchaseHandler(purchases store.Purchases) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result, err := purchases.MarkShipped(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase status"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"purchase_id": id,                  // Target document id
			"matched":     result.MatchedCount, // Zero when the id matched nothing
		}).Info("Purchase shipped")
		c.JSON(http.StatusOK, result) // Return the store update result
	}
}

// AllPurchasesHandler returns every purchase, unfiltered. Admin-only.
func AllPurchasesHandler(purchases store.Purchases) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := purchases.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
