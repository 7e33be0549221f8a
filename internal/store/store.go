// Package store is the document-store layer. Handlers depend on the
// per-collection interfaces below; the mongo-backed implementation lives in
// mongo.go. Mutations report driver-style result counts so callers can tell
// a zero-effect no-op from an actual state change.
package store

import (
	"context"

	"watch_store/internal/domain"
)

// InsertResult reports the id assigned to an inserted document.
type InsertResult struct {
	InsertedID string `json:"insertedId"` // Hex id of the new document
}

// UpdateResult reports how many documents an update touched.
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`  // Documents matching the filter
	ModifiedCount int64  `json:"modifiedCount"` // Documents actually changed
	UpsertedID    string `json:"upsertedId,omitempty"` // Set when an upsert inserted
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"` // Zero means the id matched nothing
}

// Users is the users collection. FindByEmail returns (nil, nil) when no
// document matches; SetRole is a plain update, never an upsert.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user domain.User) (*InsertResult, error)
	UpsertByEmail(ctx context.Context, user domain.User) (*UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (*UpdateResult, error)
}

// Watches is the product catalog collection.
type Watches interface {
	All(ctx context.Context) ([]domain.Watch, error)
	Get(ctx context.Context, id string) (*domain.Watch, error)
	Insert(ctx context.Context, watch domain.Watch) (*InsertResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// Purchases is the orders collection. MarkShipped on an unknown id is a
// zero-match no-op, as is Delete.
type Purchases interface {
	All(ctx context.Context) ([]domain.Purchase, error)
	ByEmail(ctx context.Context, email string) ([]domain.Purchase, error)
	Insert(ctx context.Context, purchase domain.Purchase) (*InsertResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
	MarkShipped(ctx context.Context, id string) (*UpdateResult, error)
}

// Reviews is the reviews collection. Insert-only.
type Reviews interface {
	All(ctx context.Context) ([]domain.Review, error)
	Insert(ctx context.Context, review domain.Review) (*InsertResult, error)
}
