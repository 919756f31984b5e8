// Package storetest provides in-memory implementations of the store
// interfaces for tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
)

// DB is a single in-memory document store shared by the four entity fakes,
// so populated reads can join across collections the way Mongo's $lookup
// does.
type DB struct {
	mu sync.Mutex

	users           []models.User
	properties      []models.Property
	favorites       []models.Favorite
	recommendations []models.Recommendation

	// PropertyListCalls counts PropertyStore.List invocations, so tests can
	// assert a cache hit never reached the store.
	PropertyListCalls int
	// FavoriteListCalls counts FavoriteStore.ListByUser invocations.
	FavoriteListCalls int
	// PropertyFindCalls counts PropertyStore.FindByPropID invocations.
	PropertyFindCalls int
}

func New() *DB {
	return &DB{}
}

// Stores exposes the fakes behind the production interfaces.
func (db *DB) Stores() *store.Stores {
	return &store.Stores{
		Users:           &userStore{db: db},
		Properties:      &propertyStore{db: db},
		Favorites:       &favoriteStore{db: db},
		Recommendations: &recommendationStore{db: db},
	}
}

type userStore struct{ db *DB }

func (s *userStore) Insert(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.db.users = append(s.db.users, *user)
	return nil
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

type propertyStore struct{ db *DB }

func (s *propertyStore) Insert(_ context.Context, property *models.Property) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.properties {
		if p.PropID == property.PropID {
			return store.ErrDuplicate
		}
	}
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	s.db.properties = append(s.db.properties, *property)
	return nil
}

func (s *propertyStore) FindByPropID(_ context.Context, propID string) (*models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.PropertyFindCalls++
	for _, p := range s.db.properties {
		if p.PropID == propID {
			found := p
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *propertyStore) List(_ context.Context, filter models.PropertyFilter) (*models.PropertyList, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.PropertyListCalls++

	matched := []models.Property{}
	for _, p := range s.db.properties {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return &models.PropertyList{Properties: matched[start:end], Total: total}, nil
}

func (s *propertyStore) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Property{}
	for _, p := range s.db.properties {
		if p.CreatedBy == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *propertyStore) Update(_ context.Context, propID string, owner primitive.ObjectID, upd models.UpdatePropertyRequest) (*models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.properties {
		p := &s.db.properties[i]
		if p.PropID != propID || p.CreatedBy != owner {
			continue
		}
		applyUpdate(p, upd)
		p.UpdatedAt = time.Now().UTC()
		found := *p
		return &found, nil
	}
	return nil, store.ErrNotFound
}

func (s *propertyStore) Delete(_ context.Context, propID string, owner primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, p := range s.db.properties {
		if p.PropID == propID && p.CreatedBy == owner {
			s.db.properties = append(s.db.properties[:i], s.db.properties[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type favoriteStore struct{ db *DB }

func (s *favoriteStore) Insert(_ context.Context, fav *models.Favorite) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, f := range s.db.favorites {
		if f.UserID == fav.UserID && f.PropertyID == fav.PropertyID {
			return store.ErrDuplicate
		}
	}
	if fav.ID.IsZero() {
		fav.ID = primitive.NewObjectID()
	}
	fav.CreatedAt = time.Now().UTC()
	s.db.favorites = append(s.db.favorites, *fav)
	return nil
}

func (s *favoriteStore) Delete(_ context.Context, userID, propertyID primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, f := range s.db.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			s.db.favorites = append(s.db.favorites[:i], s.db.favorites[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *favoriteStore) Exists(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, f := range s.db.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *favoriteStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.PopulatedFavorite, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.FavoriteListCalls++

	out := []models.PopulatedFavorite{}
	for _, f := range s.db.favorites {
		if f.UserID != userID {
			continue
		}
		for _, p := range s.db.properties {
			if p.ID == f.PropertyID {
				out = append(out, models.PopulatedFavorite{
					ID:        f.ID,
					UserID:    f.UserID,
					Property:  p,
					CreatedAt: f.CreatedAt,
				})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type recommendationStore struct{ db *DB }

func (s *recommendationStore) Insert(_ context.Context, rec *models.Recommendation) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	rec.CreatedAt = time.Now().UTC()
	s.db.recommendations = append(s.db.recommendations, *rec)
	return nil
}

func (s *recommendationStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Recommendation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.recommendations {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *recommendationStore) ListReceived(_ context.Context, userID primitive.ObjectID) ([]models.PopulatedRecommendation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := []models.PopulatedRecommendation{}
	for _, r := range s.db.recommendations {
		if r.ToUserID != userID {
			continue
		}
		var property *models.Property
		for _, p := range s.db.properties {
			if p.ID == r.PropertyID {
				found := p
				property = &found
				break
			}
		}
		var fromEmail string
		for _, u := range s.db.users {
			if u.ID == r.FromUserID {
				fromEmail = u.Email
				break
			}
		}
		if property == nil {
			continue
		}
		out = append(out, models.PopulatedRecommendation{
			ID:        r.ID,
			FromEmail: fromEmail,
			Property:  *property,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *recommendationStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, r := range s.db.recommendations {
		if r.ID == id {
			s.db.recommendations = append(s.db.recommendations[:i], s.db.recommendations[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func matchesFilter(p models.Property, f models.PropertyFilter) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.State != "" && p.State != f.State {
		return false
	}
	if f.City != "" && p.City != f.City {
		return false
	}
	if f.ListingType != "" && p.ListingType != f.ListingType {
		return false
	}
	if f.ListedBy != "" && p.ListedBy != f.ListedBy {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms != *f.Bathrooms {
		return false
	}
	if f.AreaMin != nil && p.AreaSqFt < *f.AreaMin {
		return false
	}
	if f.AreaMax != nil && p.AreaSqFt > *f.AreaMax {
		return false
	}
	if !containsAll(p.Amenities, f.Amenities) {
		return false
	}
	if !containsAll(p.Tags, f.Tags) {
		return false
	}
	if f.IsVerified != nil && p.IsVerified != *f.IsVerified {
		return false
	}
	return true
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func applyUpdate(p *models.Property, upd models.UpdatePropertyRequest) {
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.State != nil {
		p.State = *upd.State
	}
	if upd.City != nil {
		p.City = *upd.City
	}
	if upd.AreaSqFt != nil {
		p.AreaSqFt = *upd.AreaSqFt
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = *upd.Bathrooms
	}
	if upd.Amenities != nil {
		p.Amenities = *upd.Amenities
	}
	if upd.Furnished != nil {
		p.Furnished = *upd.Furnished
	}
	if upd.AvailableFrom != nil {
		p.AvailableFrom = *upd.AvailableFrom
	}
	if upd.ListedBy != nil {
		p.ListedBy = *upd.ListedBy
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.ColorTheme != nil {
		p.ColorTheme = *upd.ColorTheme
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.IsVerified != nil {
		p.IsVerified = *upd.IsVerified
	}
	if upd.ListingType != nil {
		p.ListingType = *upd.ListingType
	}
}
