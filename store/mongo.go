package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection           = "users"
	propertiesCollection      = "properties"
	favoritesCollection       = "favorites"
	recommendationsCollection = "recommendations"
)

// NewMongoStores builds the Mongo-backed implementation of every entity
// store against one database handle.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Users:           &mongoUserStore{col: db.Collection(usersCollection)},
		Properties:      &mongoPropertyStore{col: db.Collection(propertiesCollection)},
		Favorites:       &mongoFavoriteStore{col: db.Collection(favoritesCollection)},
		Recommendations: &mongoRecommendationStore{col: db.Collection(recommendationsCollection)},
	}
}

// EnsureIndexes creates the unique indexes the data model depends on. The
// favorites compound index is what makes the (userId, propertyId) uniqueness
// invariant hold under concurrent inserts; the application-level existence
// check alone cannot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(propertiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(favoritesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "propertyId", Value: 1}},
		Options: unique,
	})
	return err
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
