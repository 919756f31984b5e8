package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/models"
)

func newFavoriteController(e *env) *controllers.FavoriteController {
	return controllers.NewFavoriteController(e.stores.Favorites, e.stores.Properties, e.cache, e.inv, e.logger)
}

func TestAddFavoriteIsUniquePerPair(t *testing.T) {
	e := newEnv()
	fc := newFavoriteController(e)
	owner := e.seedUser(t, "Alice", "alice@example.com")
	fan := e.seedUser(t, "Bob", "bob@example.com")
	e.seedProperty(t, "PROP1001", owner.ID)

	body := models.AddFavoriteRequest{PropertyID: "PROP1001"}

	rec := httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites", body, fan.ID.Hex()))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites", body, fan.ID.Hex()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddFavoriteUnknownPropertyIs404(t *testing.T) {
	e := newEnv()
	fc := newFavoriteController(e)
	fan := e.seedUser(t, "Bob", "bob@example.com")

	rec := httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites",
		models.AddFavoriteRequest{PropertyID: "PROP9999"}, fan.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritesListReflectsAddDespiteStaleCache(t *testing.T) {
	e := newEnv()
	fc := newFavoriteController(e)
	owner := e.seedUser(t, "Alice", "alice@example.com")
	fan := e.seedUser(t, "Bob", "bob@example.com")
	e.seedProperty(t, "PROP1001", owner.ID)

	// Prime the cache with the empty list.
	rec := httptest.NewRecorder()
	fc.List()(rec, request(t, "GET", "/favorites", nil, fan.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, e.db.FavoriteListCalls)

	rec = httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites",
		models.AddFavoriteRequest{PropertyID: "PROP1001"}, fan.ID.Hex()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	fc.List()(rec, request(t, "GET", "/favorites", nil, fan.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 2, e.db.FavoriteListCalls)
	favorites := decodeBody[[]models.PopulatedFavorite](t, rec)
	require.Len(t, favorites, 1)
	assert.Equal(t, "PROP1001", favorites[0].Property.PropID)
}

func TestRemoveFavorite(t *testing.T) {
	e := newEnv()
	fc := newFavoriteController(e)
	owner := e.seedUser(t, "Alice", "alice@example.com")
	fan := e.seedUser(t, "Bob", "bob@example.com")
	e.seedProperty(t, "PROP1001", owner.ID)

	rec := httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites",
		models.AddFavoriteRequest{PropertyID: "PROP1001"}, fan.ID.Hex()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	routeWithVars(fc.Remove(), map[string]string{"propertyId": "PROP1001"})(rec,
		request(t, "DELETE", "/favorites/PROP1001", nil, fan.ID.Hex()))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Removing again: the favorite is gone.
	rec = httptest.NewRecorder()
	routeWithVars(fc.Remove(), map[string]string{"propertyId": "PROP1001"})(rec,
		request(t, "DELETE", "/favorites/PROP1001", nil, fan.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckFavorite(t *testing.T) {
	e := newEnv()
	fc := newFavoriteController(e)
	owner := e.seedUser(t, "Alice", "alice@example.com")
	fan := e.seedUser(t, "Bob", "bob@example.com")
	e.seedProperty(t, "PROP1001", owner.ID)

	rec := httptest.NewRecorder()
	routeWithVars(fc.Check(), map[string]string{"propertyId": "PROP1001"})(rec,
		request(t, "GET", "/favorites/check/PROP1001", nil, fan.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[models.IsFavoriteResponse](t, rec).IsFavorite)

	rec = httptest.NewRecorder()
	fc.Add()(rec, request(t, "POST", "/favorites",
		models.AddFavoriteRequest{PropertyID: "PROP1001"}, fan.ID.Hex()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	routeWithVars(fc.Check(), map[string]string{"propertyId": "PROP1001"})(rec,
		request(t, "GET", "/favorites/check/PROP1001", nil, fan.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[models.IsFavoriteResponse](t, rec).IsFavorite)
}
