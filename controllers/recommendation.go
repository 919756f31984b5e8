package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
)

type RecommendationController struct {
	recommendations store.RecommendationStore
	users           store.UserStore
	properties      store.PropertyStore
	cache           cache.Cache
	inv             *cache.Invalidator
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewRecommendationController(recommendations store.RecommendationStore, users store.UserStore, properties store.PropertyStore, c cache.Cache, inv *cache.Invalidator, logger *zap.Logger) *RecommendationController {
	return &RecommendationController{
		recommendations: recommendations,
		users:           users,
		properties:      properties,
		cache:           c,
		inv:             inv,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Create sends a property recommendation to another user, addressed by
// email. The recipient's cached received list is evicted so the message
// shows up on their next read.
func (rc *RecommendationController) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		if err := rc.validate.Struct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "ToEmail and propertyId are required")
			return
		}

		ctx := r.Context()
		toUser, err := rc.users.FindByEmail(ctx, req.ToEmail)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Recipient user not found")
				return
			}
			rc.logger.Error("recipient lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error recommending property")
			return
		}

		property, err := rc.properties.FindByPropID(ctx, req.PropertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			rc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error recommending property")
			return
		}

		rec := &models.Recommendation{
			FromUserID: fromID,
			ToUserID:   toUser.ID,
			PropertyID: property.ID,
			Message:    req.Message,
		}
		if err := rc.recommendations.Insert(ctx, rec); err != nil {
			rc.logger.Error("recommendation insert failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error recommending property")
			return
		}

		rc.inv.RecommendationsChanged(ctx, toUser.ID.Hex())

		WriteJSON(w, http.StatusCreated, rec)
	}
}

// ListReceived serves the caller's received recommendations, populated with
// property and sender email, through the cache.
func (rc *RecommendationController) ListReceived() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		key := cache.RecommendationsKey(userID.Hex())
		recs, err := cache.GetOrLoad(r.Context(), rc.cache, rc.logger, key, cache.RecommendationsTTL,
			func(ctx context.Context) ([]models.PopulatedRecommendation, error) {
				return rc.recommendations.ListReceived(ctx, userID)
			})
		if err != nil {
			rc.logger.Error("recommendations listing failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error fetching recommendations")
			return
		}

		WriteJSON(w, http.StatusOK, recs)
	}
}

// Delete removes a recommendation. Only the recipient may delete it.
func (rc *RecommendationController) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		recID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid recommendation id")
			return
		}

		ctx := r.Context()
		rec, err := rc.recommendations.FindByID(ctx, recID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Recommendation not found")
				return
			}
			rc.logger.Error("recommendation lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error deleting recommendation")
			return
		}

		if rec.ToUserID != userID {
			WriteError(w, http.StatusForbidden, "Not authorized to delete this recommendation")
			return
		}

		if err := rc.recommendations.Delete(ctx, recID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Recommendation not found")
				return
			}
			rc.logger.Error("recommendation delete failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error deleting recommendation")
			return
		}

		rc.inv.RecommendationsChanged(ctx, userID.Hex())

		WriteJSON(w, http.StatusOK, messageResponse{Message: "Recommendation deleted successfully"})
	}
}
