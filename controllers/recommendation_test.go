package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/models"
)

func newRecommendationController(e *env) *controllers.RecommendationController {
	return controllers.NewRecommendationController(
		e.stores.Recommendations, e.stores.Users, e.stores.Properties, e.cache, e.inv, e.logger)
}

func TestRecommendRequiresExistingRecipientAndProperty(t *testing.T) {
	e := newEnv()
	rc := newRecommendationController(e)
	sender := e.seedUser(t, "Alice", "alice@example.com")
	e.seedProperty(t, "PROP1001", sender.ID)

	rec := httptest.NewRecorder()
	rc.Create()(rec, request(t, "POST", "/recommendations",
		models.RecommendRequest{ToEmail: "ghost@example.com", PropertyID: "PROP1001"}, sender.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e.seedUser(t, "Bob", "bob@example.com")

	rec = httptest.NewRecorder()
	rc.Create()(rec, request(t, "POST", "/recommendations",
		models.RecommendRequest{ToEmail: "bob@example.com", PropertyID: "PROP9999"}, sender.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rc.Create()(rec, request(t, "POST", "/recommendations",
		models.RecommendRequest{ToEmail: "bob@example.com", PropertyID: "PROP1001", Message: "check this out"}, sender.ID.Hex()))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListReceivedIsPopulated(t *testing.T) {
	e := newEnv()
	rc := newRecommendationController(e)
	sender := e.seedUser(t, "Alice", "alice@example.com")
	recipient := e.seedUser(t, "Bob", "bob@example.com")
	e.seedProperty(t, "PROP1001", sender.ID)

	rec := httptest.NewRecorder()
	rc.Create()(rec, request(t, "POST", "/recommendations",
		models.RecommendRequest{ToEmail: "bob@example.com", PropertyID: "PROP1001", Message: "check this out"}, sender.ID.Hex()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	rc.ListReceived()(rec, request(t, "GET", "/recommendations/received", nil, recipient.ID.Hex()))
	require.Equal(t, http.StatusOK, rec.Code)

	recs := decodeBody[[]models.PopulatedRecommendation](t, rec)
	require.Len(t, recs, 1)
	assert.Equal(t, "check this out", recs[0].Message)
	assert.Equal(t, "alice@example.com", recs[0].FromEmail)
	assert.Equal(t, "PROP1001", recs[0].Property.PropID)
}

func TestDeleteRecommendationRecipientOnly(t *testing.T) {
	e := newEnv()
	rc := newRecommendationController(e)
	sender := e.seedUser(t, "Alice", "alice@example.com")
	recipient := e.seedUser(t, "Bob", "bob@example.com")
	property := e.seedProperty(t, "PROP1001", sender.ID)

	recommendation := &models.Recommendation{
		FromUserID: sender.ID,
		ToUserID:   recipient.ID,
		PropertyID: property.ID,
		Message:    "check this out",
	}
	require.NoError(t, e.stores.Recommendations.Insert(context.Background(), recommendation))

	// The sender is not the recipient: forbidden, and the message survives.
	rec := httptest.NewRecorder()
	routeWithVars(rc.Delete(), map[string]string{"id": recommendation.ID.Hex()})(rec,
		request(t, "DELETE", "/recommendations/"+recommendation.ID.Hex(), nil, sender.ID.Hex()))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := e.stores.Recommendations.FindByID(context.Background(), recommendation.ID)
	assert.NoError(t, err)

	rec = httptest.NewRecorder()
	routeWithVars(rc.Delete(), map[string]string{"id": recommendation.ID.Hex()})(rec,
		request(t, "DELETE", "/recommendations/"+recommendation.ID.Hex(), nil, recipient.ID.Hex()))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = e.stores.Recommendations.FindByID(context.Background(), recommendation.ID)
	assert.Error(t, err)
}

func TestDeleteRecommendationUnknownIDIs404(t *testing.T) {
	e := newEnv()
	rc := newRecommendationController(e)
	user := e.seedUser(t, "Bob", "bob@example.com")

	rec := httptest.NewRecorder()
	routeWithVars(rc.Delete(), map[string]string{"id": "64b1f0a2c3d4e5f607182930"})(rec,
		request(t, "DELETE", "/recommendations/64b1f0a2c3d4e5f607182930", nil, user.ID.Hex()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
