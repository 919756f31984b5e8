package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is a directed message from one user to another about a
// property. Only the recipient may delete it.
type Recommendation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedRecommendation resolves the property and the sender's email.
type PopulatedRecommendation struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FromEmail string             `bson:"fromEmail" json:"fromEmail"`
	Property  Property           `bson:"property" json:"property"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type RecommendRequest struct {
	ToEmail    string `json:"toEmail" validate:"required,email"`
	PropertyID string `json:"propertyId" validate:"required"`
	Message    string `json:"message"`
}
