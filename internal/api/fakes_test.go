package api_test

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"watch_store/internal/domain"
	"watch_store/internal/store"
)

// In-memory stand-ins for the document store collections. They mirror the
// mongo-backed behavior the handlers rely on: absent lookups are (nil, nil),
// unknown or unparseable ids report zero-match results.

type memUsers struct {
	byEmail map[string]domain.User
}

func newMemUsers(seed ...domain.User) *memUsers {
	m := &memUsers{byEmail: map[string]domain.User{}}
	for _, u := range seed {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) Insert(_ context.Context, user domain.User) (*store.InsertResult, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return nil, errors.New("duplicate key")
	}
	user.ID = primitive.NewObjectID()
	m.byEmail[user.Email] = user
	return &store.InsertResult{InsertedID: user.ID.Hex()}, nil
}

func (m *memUsers) UpsertByEmail(_ context.Context, user domain.User) (*store.UpdateResult, error) {
	if existing, ok := m.byEmail[user.Email]; ok {
		if user.DisplayName != "" {
			existing.DisplayName = user.DisplayName
		}
		m.byEmail[user.Email] = existing
		return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	user.ID = primitive.NewObjectID()
	user.Role = ""
	m.byEmail[user.Email] = user
	return &store.UpdateResult{UpsertedID: user.ID.Hex()}, nil
}

func (m *memUsers) SetRole(_ context.Context, email, role string) (*store.UpdateResult, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return &store.UpdateResult{}, nil
	}
	res := &store.UpdateResult{MatchedCount: 1}
	if u.Role != role {
		u.Role = role
		m.byEmail[email] = u
		res.ModifiedCount = 1
	}
	return res, nil
}

type memPurchases struct {
	items []domain.Purchase
}

func (m *memPurchases) All(_ context.Context) ([]domain.Purchase, error) {
	return append([]domain.Purchase{}, m.items...), nil
}

func (m *memPurchases) ByEmail(_ context.Context, email string) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	for _, p := range m.items {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPurchases) Insert(_ context.Context, purchase domain.Purchase) (*store.InsertResult, error) {
	purchase.ID = primitive.NewObjectID()
	m.items = append(m.items, purchase)
	return &store.InsertResult{InsertedID: purchase.ID.Hex()}, nil
}

func (m *memPurchases) Delete(_ context.Context, id string) (*store.DeleteResult, error) {
	for i, p := range m.items {
		if p.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{}, nil
}

func (m *memPurchases) MarkShipped(_ context.Context, id string) (*store.UpdateResult, error) {
	for i, p := range m.items {
		if p.ID.Hex() == id {
			res := &store.UpdateResult{MatchedCount: 1}
			if p.Status != domain.StatusShipped {
				m.items[i].Status = domain.StatusShipped
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return &store.UpdateResult{}, nil
}

type memWatches struct {
	items []domain.Watch
}

func (m *memWatches) All(_ context.Context) ([]domain.Watch, error) {
	return append([]domain.Watch{}, m.items...), nil
}

func (m *memWatches) Get(_ context.Context, id string) (*domain.Watch, error) {
	for _, w := range m.items {
		if w.ID.Hex() == id {
			return &w, nil
		}
	}
	return nil, nil
}

func (m *memWatches) Insert(_ context.Context, watch domain.Watch) (*store.InsertResult, error) {
	watch.ID = primitive.NewObjectID()
	m.items = append(m.items, watch)
	return &store.InsertResult{InsertedID: watch.ID.Hex()}, nil
}

func (m *memWatches) Delete(_ context.Context, id string) (*store.DeleteResult, error) {
	for i, w := range m.items {
		if w.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{}, nil
}

type memReviews struct {
	items []domain.Review
}

func (m *memReviews) All(_ context.Context) ([]domain.Review, error) {
	return append([]domain.Review{}, m.items...), nil
}

func (m *memReviews) Insert(_ context.Context, review domain.Review) (*store.InsertResult, error) {
	review.ID = primitive.NewObjectID()
	m.items = append(m.items, review)
	return &store.InsertResult{InsertedID: review.ID.Hex()}, nil
}
