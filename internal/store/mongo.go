package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"watch_store/internal/domain"
)

// Store bundles the four collections behind their interfaces and owns the
// underlying client. Constructed once at startup, closed on shutdown.
type Store struct {
	client    *mongo.Client
	users     *mongo.Collection
	Users     Users
	Watches   Watches
	Purchases Purchases
	Reviews   Reviews
}

// Connect opens the store connection and wires up the collections.
// Failure here is the one startup error the process treats as fatal.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	// Verify the connection is live before handing the store out
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	db := client.Database(dbName)
	users := db.Collection("users")
	return &Store{
		client:    client,
		users:     users,
		Users:     &userStore{col: users},
		Watches:   &watchStore{col: db.Collection("watches")},
		Purchases: &purchaseStore{col: db.Collection("purchases")},
		Reviews:   &reviewStore{col: db.Collection("reviews")},
	}, nil
}

// EnsureIndexes creates the unique index on users.email that the upsert
// sign-in path relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: ensure indexes: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// objectID parses a hex document id. The ok result is false for ids that
// cannot address any document, which callers report as a zero-match no-op.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// insertResult maps the driver's insert result to the wire shape.
func insertResult(res *mongo.InsertOneResult) *InsertResult {
	out := &InsertResult{}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
	} else {
		out.InsertedID = fmt.Sprint(res.InsertedID)
	}
	return out
}

// updateResult maps the driver's update result to the wire shape.
func updateResult(res *mongo.UpdateResult) *UpdateResult {
	out := &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}

// ───── users ─────

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil // Absent user is not an error
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) Insert(ctx context.Context, user domain.User) (*InsertResult, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// UpsertByEmail inserts or updates the profile keyed by email, so repeat
// sign-ins converge on a single document. The role field is never written
// through this path.
func (s *userStore) UpsertByEmail(ctx context.Context, user domain.User) (*UpdateResult, error) {
	set := bson.M{"email": user.Email}
	if user.DisplayName != "" {
		set["displayName"] = user.DisplayName
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// SetRole updates the role of an existing user. A missing target yields a
// zero-match result, not an insert.
func (s *userStore) SetRole(ctx context.Context, email, role string) (*UpdateResult, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// ───── watches ─────

type watchStore struct {
	col *mongo.Collection
}

func (s *watchStore) All(ctx context.Context) ([]domain.Watch, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	watches := []domain.Watch{}
	if err := cursor.All(ctx, &watches); err != nil {
		return nil, err
	}
	return watches, nil
}

func (s *watchStore) Get(ctx context.Context, id string) (*domain.Watch, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var watch domain.Watch
	err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&watch)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

func (s *watchStore) Insert(ctx context.Context, watch domain.Watch) (*InsertResult, error) {
	res, err := s.col.InsertOne(ctx, watch)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

func (s *watchStore) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return &DeleteResult{}, nil
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// ───── purchases ─────

type purchaseStore struct {
	col *mongo.Collection
}

func (s *purchaseStore) All(ctx context.Context) ([]domain.Purchase, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	purchases := []domain.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *purchaseStore) ByEmail(ctx context.Context, email string) ([]domain.Purchase, error) {
	cursor, err := s.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	purchases := []domain.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *purchaseStore) Insert(ctx context.Context, purchase domain.Purchase) (*InsertResult, error) {
	res, err := s.col.InsertOne(ctx, purchase)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

func (s *purchaseStore) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return &DeleteResult{}, nil
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// MarkShipped sets the status field. Plain update: an unknown id reports
// zero matches instead of inserting a stray document.
func (s *purchaseStore) MarkShipped(ctx context.Context, id string) (*UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return &UpdateResult{}, nil
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": domain.StatusShipped}},
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// ───── reviews ─────

type reviewStore struct {
	col *mongo.Collection
}

func (s *reviewStore) All(ctx context.Context) ([]domain.Review, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *reviewStore) Insert(ctx context.Context, review domain.Review) (*InsertResult, error) {
	res, err := s.col.InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}
