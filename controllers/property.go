package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
)

type PropertyController struct {
	properties store.PropertyStore
	cache      cache.Cache
	inv        *cache.Invalidator
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewPropertyController(properties store.PropertyStore, c cache.Cache, inv *cache.Invalidator, logger *zap.Logger) *PropertyController {
	return &PropertyController{
		properties: properties,
		cache:      c,
		inv:        inv,
		validate:   validator.New(),
		logger:     logger,
	}
}

// List serves the filtered, paginated listing query through the cache.
func (pc *PropertyController) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parsePropertyFilter(r)
		key := cache.Key(cache.NamespaceProperties, filterParams(filter))

		result, err := cache.GetOrLoad(r.Context(), pc.cache, pc.logger, key, cache.PropertyListTTL,
			func(ctx context.Context) (*models.PropertyList, error) {
				return pc.properties.List(ctx, filter)
			})
		if err != nil {
			pc.logger.Error("property listing failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		WriteJSON(w, http.StatusOK, result)
	}
}

// parsePropertyFilter reads the closed set of supported query dimensions.
// Unknown parameters are ignored; malformed numeric values drop the
// dimension rather than failing the request.
func parsePropertyFilter(r *http.Request) models.PropertyFilter {
	q := r.URL.Query()
	filter := models.PropertyFilter{
		Type:        q.Get("type"),
		State:       q.Get("state"),
		City:        q.Get("city"),
		ListingType: q.Get("listingType"),
		ListedBy:    q.Get("listedBy"),
		Page:        1,
		Limit:       10,
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}

	filter.PriceMin = parseFloatParam(q.Get("priceMin"))
	filter.PriceMax = parseFloatParam(q.Get("priceMax"))
	filter.AreaMin = parseFloatParam(q.Get("areaMin"))
	filter.AreaMax = parseFloatParam(q.Get("areaMax"))
	filter.Bedrooms = parseIntParam(q.Get("bedrooms"))
	filter.Bathrooms = parseIntParam(q.Get("bathrooms"))

	if v := q.Get("amenities"); v != "" {
		filter.Amenities = splitCSV(v)
	}
	if v := q.Get("tags"); v != "" {
		filter.Tags = splitCSV(v)
	}
	if v := q.Get("isVerified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.IsVerified = &b
		}
	}
	return filter
}

// filterParams maps the filter onto cache-key parameters. Unset dimensions
// stay nil so they never reach the key.
func filterParams(f models.PropertyFilter) map[string]any {
	params := map[string]any{
		"page":  f.Page,
		"limit": f.Limit,
	}
	if f.Type != "" {
		params["type"] = f.Type
	}
	if f.State != "" {
		params["state"] = f.State
	}
	if f.City != "" {
		params["city"] = f.City
	}
	if f.ListingType != "" {
		params["listingType"] = f.ListingType
	}
	if f.ListedBy != "" {
		params["listedBy"] = f.ListedBy
	}
	params["priceMin"] = f.PriceMin
	params["priceMax"] = f.PriceMax
	params["bedrooms"] = f.Bedrooms
	params["bathrooms"] = f.Bathrooms
	params["areaMin"] = f.AreaMin
	params["areaMax"] = f.AreaMax
	params["amenities"] = f.Amenities
	params["tags"] = f.Tags
	params["isVerified"] = f.IsVerified
	return params
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntParam(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetByID looks a property up by its public id through the cache. Absent
// properties are not cached; a later create must be visible immediately.
func (pc *PropertyController) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propID := mux.Vars(r)["id"]
		key := cache.PropertyKey(propID)

		property, err := cache.GetOrLoad(r.Context(), pc.cache, pc.logger, key, cache.PropertyTTL,
			func(ctx context.Context) (*models.Property, error) {
				return pc.properties.FindByPropID(ctx, propID)
			})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			pc.logger.Error("property lookup failed", zap.String("propId", propID), zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error fetching property")
			return
		}

		WriteJSON(w, http.StatusOK, property)
	}
}

// ListByOwner returns the caller's own listings, uncached.
func (pc *PropertyController) ListByOwner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		properties, err := pc.properties.ListByOwner(r.Context(), userID)
		if err != nil {
			pc.logger.Error("owner listing failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error fetching user properties")
			return
		}

		WriteJSON(w, http.StatusOK, properties)
	}
}

// Create inserts a listing owned by the caller and flushes the property
// cache namespaces.
func (pc *PropertyController) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.CreatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := pc.validate.Struct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "Missing or invalid property fields")
			return
		}

		property := &models.Property{
			PropID:        req.PropID,
			Title:         req.Title,
			Type:          req.Type,
			Price:         req.Price,
			State:         req.State,
			City:          req.City,
			AreaSqFt:      req.AreaSqFt,
			Bedrooms:      req.Bedrooms,
			Bathrooms:     req.Bathrooms,
			Amenities:     req.Amenities,
			Furnished:     req.Furnished,
			AvailableFrom: req.AvailableFrom,
			ListedBy:      req.ListedBy,
			Tags:          req.Tags,
			ColorTheme:    req.ColorTheme,
			Rating:        req.Rating,
			IsVerified:    req.IsVerified,
			ListingType:   req.ListingType,
			CreatedBy:     userID,
		}

		if err := pc.properties.Insert(r.Context(), property); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				WriteError(w, http.StatusBadRequest, "Property id already exists")
				return
			}
			pc.logger.Error("property insert failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error creating property")
			return
		}

		pc.inv.PropertyCreated(r.Context())

		WriteJSON(w, http.StatusCreated, property)
	}
}

// Update mutates a listing. Ownership is enforced: the store filter includes
// the caller as creator, so a non-owner gets 403 while a missing property
// gets 404.
func (pc *PropertyController) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		propID := mux.Vars(r)["id"]

		var req models.UpdatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid update data")
			return
		}

		if _, err := pc.properties.FindByPropID(r.Context(), propID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			pc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error updating property")
			return
		}

		updated, err := pc.properties.Update(r.Context(), propID, userID, req)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusForbidden, "Not authorized to update this property")
				return
			}
			pc.logger.Error("property update failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error updating property")
			return
		}

		pc.inv.PropertyWritten(r.Context(), propID)

		WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete removes a listing with the same ownership rule as Update.
func (pc *PropertyController) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		propID := mux.Vars(r)["id"]

		if _, err := pc.properties.FindByPropID(r.Context(), propID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Property not found")
				return
			}
			pc.logger.Error("property lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error deleting property")
			return
		}

		if err := pc.properties.Delete(r.Context(), propID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusForbidden, "Not authorized to delete this property")
				return
			}
			pc.logger.Error("property delete failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Error deleting property")
			return
		}

		pc.inv.PropertyWritten(r.Context(), propID)

		WriteJSON(w, http.StatusOK, messageResponse{Message: "Property deleted successfully"})
	}
}
