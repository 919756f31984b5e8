package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logabaalan777/property-listing/models"
)

type mongoRecommendationStore struct {
	col *mongo.Collection
}

func (s *mongoRecommendationStore) Insert(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	rec.CreatedAt = time.Now().UTC()
	_, err := s.col.InsertOne(ctx, rec)
	return mapWriteErr(err)
}

func (s *mongoRecommendationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListReceived resolves the property and the sender's email in one
// aggregation so the recipient sees who sent what without extra round
// trips.
func (s *mongoRecommendationStore) ListReceived(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedRecommendation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"toUserId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         propertiesCollection,
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: "$property"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "fromUserId",
			"foreignField": "_id",
			"as":           "fromUser",
		}}},
		{{Key: "$unwind", Value: "$fromUser"}},
		{{Key: "$addFields", Value: bson.M{"fromEmail": "$fromUser.email"}}},
		{{Key: "$project", Value: bson.M{"fromUser": 0}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recs := []models.PopulatedRecommendation{}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *mongoRecommendationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
