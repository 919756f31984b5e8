package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
)

type FavoriteController struct {
	favorites  store.FavoriteStore
	properties store.PropertyStore
	cache      cache.Cache
	inv        *cache.Invalidator
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewFavoriteController(favorites store.FavoriteStore, properties store.PropertyStore, c cache.Cache, inv *cache.Invalidator, logger *zap.Logger) *FavoriteController {
	return &FavoriteController{
		favorites:  favorites,
		properties: properties,
		cache:      c,
		inv:        inv,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Add favorites a property for the caller. The property is addressed by its
// public id; the pair's uniqueness is checked here for the friendly 400 and
// enforced by the store's compound index for the racy case.
func (fc *FavoriteController) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.AddFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if err := fc.validate.Struct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "PropertyId is required")
			return
		}

		ctx := r.Context()
		property, err := fc.properties.FindByPropID(ctx, req.PropertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			fc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error adding favorite")
			return
		}

		exists, err := fc.favorites.Exists(ctx, userID, property.ID)
		if err != nil {
			fc.logger.Error("favorite existence check failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error adding favorite")
			return
		}
		if exists {
			WriteError(w, http.StatusBadRequest, "Property already in favorites")
			return
		}

		fav := &models.Favorite{UserID: userID, PropertyID: property.ID}
		if err := fc.favorites.Insert(ctx, fav); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				WriteError(w, http.StatusBadRequest, "Property already in favorites")
				return
			}
			fc.logger.Error("favorite insert failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error adding favorite")
			return
		}

		fc.inv.FavoritesChanged(ctx, userID.Hex())

		WriteJSON(w, http.StatusCreated, fav)
	}
}

// Remove unfavorites a property addressed by its public id.
func (fc *FavoriteController) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		propID := mux.Vars(r)["propertyId"]

		ctx := r.Context()
		property, err := fc.properties.FindByPropID(ctx, propID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			fc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error removing favorite")
			return
		}

		if err := fc.favorites.Delete(ctx, userID, property.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Favorite not found")
				return
			}
			fc.logger.Error("favorite delete failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error removing favorite")
			return
		}

		fc.inv.FavoritesChanged(ctx, userID.Hex())

		WriteJSON(w, http.StatusOK, messageResponse{Message: "Property removed from favorites"})
	}
}

// List serves the caller's favorites, populated with their properties,
// through the cache.
func (fc *FavoriteController) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		key := cache.FavoritesKey(userID.Hex())
		favorites, err := cache.GetOrLoad(r.Context(), fc.cache, fc.logger, key, cache.FavoritesTTL,
			func(ctx context.Context) ([]models.PopulatedFavorite, error) {
				return fc.favorites.ListByUser(ctx, userID)
			})
		if err != nil {
			fc.logger.Error("favorites listing failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error fetching favorites")
			return
		}

		WriteJSON(w, http.StatusOK, favorites)
	}
}

// Check reports whether the caller has favorited a property. The property
// itself is resolved through its own cache entry first.
func (fc *FavoriteController) Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		propID := mux.Vars(r)["propertyId"]
		key := cache.PropertyKey(propID)

		property, err := cache.GetOrLoad(r.Context(), fc.cache, fc.logger, key, cache.PropertyTTL,
			func(ctx context.Context) (*models.Property, error) {
				return fc.properties.FindByPropID(ctx, propID)
			})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			fc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error checking favorite status")
			return
		}

		exists, err := fc.favorites.Exists(r.Context(), userID, property.ID)
		if err != nil {
			fc.logger.Error("favorite existence check failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error checking favorite status")
			return
		}

		WriteJSON(w, http.StatusOK, models.IsFavoriteResponse{IsFavorite: exists})
	}
}
