package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/cache/cachetest"
	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
	"github.com/logabaalan777/property-listing/store/storetest"
)

type env struct {
	db     *storetest.DB
	stores *store.Stores
	cache  *cachetest.Fake
	inv    *cache.Invalidator
	logger *zap.Logger
}

func newEnv() *env {
	db := storetest.New()
	fake := cachetest.New()
	logger := zap.NewNop()
	return &env{
		db:     db,
		stores: db.Stores(),
		cache:  fake,
		inv:    cache.NewInvalidator(fake, logger),
		logger: logger,
	}
}

// seedUser inserts a user directly and returns it.
func (e *env) seedUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "x", CreatedAt: time.Now()}
	require.NoError(t, e.stores.Users.Insert(context.Background(), user))
	return user
}

// seedProperty inserts a property owned by owner and returns it.
func (e *env) seedProperty(t *testing.T, propID string, owner primitive.ObjectID) *models.Property {
	t.Helper()
	property := &models.Property{
		PropID:      propID,
		Title:       "Test listing",
		Type:        "Apartment",
		Price:       250000,
		State:       "MH",
		City:        "Pune",
		AreaSqFt:    900,
		Bedrooms:    2,
		Bathrooms:   1,
		ListingType: "sale",
		CreatedBy:   owner,
	}
	require.NoError(t, e.stores.Properties.Insert(context.Background(), property))
	return property
}

// request builds an http request, optionally JSON-encoding body and
// injecting userID the way the auth middleware would.
func request(t *testing.T, method, target string, body any, userID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), controllers.UserIDKey, userID))
	}
	return req
}

// routeWithVars injects mux path variables the way the router would.
func routeWithVars(h http.HandlerFunc, vars map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, mux.SetURLVars(r, vars))
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
