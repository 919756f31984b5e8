package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logabaalan777/property-listing/models"
)

type mongoFavoriteStore struct {
	col *mongo.Collection
}

func (s *mongoFavoriteStore) Insert(ctx context.Context, fav *models.Favorite) error {
	if fav.ID.IsZero() {
		fav.ID = primitive.NewObjectID()
	}
	fav.CreatedAt = time.Now().UTC()
	_, err := s.col.InsertOne(ctx, fav)
	return mapWriteErr(err)
}

func (s *mongoFavoriteStore) Delete(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoFavoriteStore) Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{"userId": userID, "propertyId": propertyID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser resolves each favorite's property reference with a $lookup so
// the response carries the full listing, not a bare id.
func (s *mongoFavoriteStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedFavorite, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         propertiesCollection,
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: "$property"}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := []models.PopulatedFavorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
