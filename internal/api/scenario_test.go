package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watch_store/internal/api"
	"watch_store/internal/domain"
	"watch_store/internal/identity"
)

const testSecret = "scenario-secret"

// newService builds the full route table over in-memory collections, the
// same wiring the server entrypoint uses.
func newService(users *memUsers) (*gin.Engine, *memPurchases, *memWatches) {
	purchases := &memPurchases{}
	watches := &memWatches{}
	r := gin.New()
	api.RegisterRoutes(r, api.Deps{
		Users:     users,
		Watches:   watches,
		Purchases: purchases,
		Reviews:   &memReviews{},
		Verifier:  identity.NewJWTVerifier(testSecret),
	})
	return r, purchases, watches
}

func performAs(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, email string) string {
	t.Helper()
	token, err := identity.Sign(email, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// The full order lifecycle: create, list mine, ship as admin, cancel,
// list mine again.
func TestPurchaseLifecycleScenario(t *testing.T) {
	users := newMemUsers(domain.User{Email: "boss@x.com", Role: domain.RoleAdmin})
	r, _, _ := newService(users)
	boss := adminToken(t, "boss@x.com")

	// Create a purchase as an anonymous customer
	rec := performAs(r, http.MethodPost, "/purchase", `{"email":"a@x.com","item":"W1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ins struct {
		InsertedID string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ins))
	require.NotEmpty(t, ins.InsertedID)

	// The customer sees exactly one pending purchase
	rec = performAs(r, http.MethodGet, "/myPurchases/a@x.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []domain.Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, ins.InsertedID, mine[0].ID.Hex())
	assert.Empty(t, mine[0].Status)
	assert.NotContains(t, rec.Body.String(), "status", "pending purchase carries no status field")

	// Admin ships it
	rec = performAs(r, http.MethodPut, "/dashboard/purchaseStatus/"+ins.InsertedID, "", boss)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performAs(r, http.MethodGet, "/myPurchases/a@x.com", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, domain.StatusShipped, mine[0].Status)

	// Customer cancels; the document is gone
	rec = performAs(r, http.MethodDelete, "/purchase/"+ins.InsertedID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performAs(r, http.MethodGet, "/myPurchases/a@x.com", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Empty(t, mine)
}

func TestDashboardRejectsAnonymousAndNonAdmins(t *testing.T) {
	users := newMemUsers(
		domain.User{Email: "boss@x.com", Role: domain.RoleAdmin},
		domain.User{Email: "customer@x.com"},
	)
	r, _, _ := newService(users)

	// No token at all
	rec := performAs(r, http.MethodGet, "/dashboard/allPurchases", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A garbage token downgrades to "no identity", not an error
	rec = performAs(r, http.MethodGet, "/dashboard/allPurchases", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Verified but not an admin
	rec = performAs(r, http.MethodGet, "/dashboard/allPurchases", "", adminToken(t, "customer@x.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Verified admin gets through
	rec = performAs(r, http.MethodGet, "/dashboard/allPurchases", "", adminToken(t, "boss@x.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGrantEndpointEndToEnd(t *testing.T) {
	users := newMemUsers(
		domain.User{Email: "boss@x.com", Role: domain.RoleAdmin},
		domain.User{Email: "customer@x.com"},
		domain.User{Email: "target@x.com"},
	)
	r, _, _ := newService(users)

	// No Authorization header: 401 and no mutation
	rec := performAs(r, http.MethodPut, "/users/admin", `{"email":"target@x.com"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	target, _ := users.FindByEmail(context.Background(), "target@x.com")
	assert.Empty(t, target.Role)

	// Valid token, non-admin requester: completes without mutation
	rec = performAs(r, http.MethodPut, "/users/admin", `{"email":"target@x.com"}`, adminToken(t, "customer@x.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
	target, _ = users.FindByEmail(context.Background(), "target@x.com")
	assert.Empty(t, target.Role)

	// Admin requester: target promoted
	rec = performAs(r, http.MethodPut, "/users/admin", `{"email":"target@x.com"}`, adminToken(t, "boss@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	target, _ = users.FindByEmail(context.Background(), "target@x.com")
	assert.Equal(t, domain.RoleAdmin, target.Role)
}

func TestPublicRoutesIgnoreBadTokens(t *testing.T) {
	users := newMemUsers()
	r, _, watches := newService(users)
	_, err := watches.Insert(context.Background(), domain.Watch{Name: "Chrono"})
	require.NoError(t, err)

	// An expired token on a public route is swallowed, never surfaced
	expired, err := identity.Sign("a@x.com", testSecret, -time.Minute)
	require.NoError(t, err)
	rec := performAs(r, http.MethodGet, "/watches", "", expired)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Watch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}
