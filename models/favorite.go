package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite joins a user to a property. The (UserID, PropertyID) pair is
// unique, enforced by a compound index.
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedFavorite is a favorite with the property reference resolved.
type PopulatedFavorite struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Property  Property           `bson:"property" json:"property"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type AddFavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type IsFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
