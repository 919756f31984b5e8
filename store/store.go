// Package store wraps MongoDB behind typed per-entity interfaces so the
// controllers depend on contracts, not collections, and tests can substitute
// fakes.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/logabaalan777/property-listing/models"
)

var (
	// ErrNotFound reports that no document matched.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate reports a unique-index violation.
	ErrDuplicate = errors.New("store: duplicate")
)

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type PropertyStore interface {
	Insert(ctx context.Context, property *models.Property) error
	FindByPropID(ctx context.Context, propID string) (*models.Property, error)
	List(ctx context.Context, filter models.PropertyFilter) (*models.PropertyList, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error)
	Update(ctx context.Context, propID string, owner primitive.ObjectID, upd models.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, propID string, owner primitive.ObjectID) error
}

type FavoriteStore interface {
	Insert(ctx context.Context, fav *models.Favorite) error
	Delete(ctx context.Context, userID, propertyID primitive.ObjectID) error
	Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedFavorite, error)
}

type RecommendationStore interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recommendation, error)
	ListReceived(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedRecommendation, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Stores bundles the four entity stores for injection.
type Stores struct {
	Users           UserStore
	Properties      PropertyStore
	Favorites       FavoriteStore
	Recommendations RecommendationStore
}
