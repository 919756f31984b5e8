package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logabaalan777/property-listing/models"
)

type mongoPropertyStore struct {
	col *mongo.Collection
}

func (s *mongoPropertyStore) Insert(ctx context.Context, property *models.Property) error {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, property)
	return mapWriteErr(err)
}

func (s *mongoPropertyStore) FindByPropID(ctx context.Context, propID string) (*models.Property, error) {
	var property models.Property
	err := s.col.FindOne(ctx, bson.M{"id": propID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *mongoPropertyStore) List(ctx context.Context, filter models.PropertyFilter) (*models.PropertyList, error) {
	query := buildPropertyQuery(filter)

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return &models.PropertyList{Properties: properties, Total: total}, nil
}

func (s *mongoPropertyStore) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"createdBy": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *mongoPropertyStore) Update(ctx context.Context, propID string, owner primitive.ObjectID, upd models.UpdatePropertyRequest) (*models.Property, error) {
	set := buildPropertySet(upd)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"id": propID, "createdBy": owner},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *mongoPropertyStore) Delete(ctx context.Context, propID string, owner primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"id": propID, "createdBy": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// buildPropertyQuery translates the closed filter set into a Mongo query.
// Range dimensions (price, area) fold both bounds into one field condition;
// amenities and tags require every listed element to be present.
func buildPropertyQuery(f models.PropertyFilter) bson.M {
	query := bson.M{}

	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.State != "" {
		query["state"] = f.State
	}
	if f.City != "" {
		query["city"] = f.City
	}
	if f.ListingType != "" {
		query["listingType"] = f.ListingType
	}
	if f.ListedBy != "" {
		query["listedBy"] = f.ListedBy
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		price := bson.M{}
		if f.PriceMin != nil {
			price["$gte"] = *f.PriceMin
		}
		if f.PriceMax != nil {
			price["$lte"] = *f.PriceMax
		}
		query["price"] = price
	}

	if f.Bedrooms != nil {
		query["bedrooms"] = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		query["bathrooms"] = *f.Bathrooms
	}

	if f.AreaMin != nil || f.AreaMax != nil {
		area := bson.M{}
		if f.AreaMin != nil {
			area["$gte"] = *f.AreaMin
		}
		if f.AreaMax != nil {
			area["$lte"] = *f.AreaMax
		}
		query["areaSqFt"] = area
	}

	if len(f.Amenities) > 0 {
		query["amenities"] = bson.M{"$all": f.Amenities}
	}
	if len(f.Tags) > 0 {
		query["tags"] = bson.M{"$all": f.Tags}
	}
	if f.IsVerified != nil {
		query["isVerified"] = *f.IsVerified
	}

	return query
}

func buildPropertySet(upd models.UpdatePropertyRequest) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.State != nil {
		set["state"] = *upd.State
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.AreaSqFt != nil {
		set["areaSqFt"] = *upd.AreaSqFt
	}
	if upd.Bedrooms != nil {
		set["bedrooms"] = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		set["bathrooms"] = *upd.Bathrooms
	}
	if upd.Amenities != nil {
		set["amenities"] = *upd.Amenities
	}
	if upd.Furnished != nil {
		set["furnished"] = *upd.Furnished
	}
	if upd.AvailableFrom != nil {
		set["availableFrom"] = *upd.AvailableFrom
	}
	if upd.ListedBy != nil {
		set["listedBy"] = *upd.ListedBy
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.ColorTheme != nil {
		set["colorTheme"] = *upd.ColorTheme
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.IsVerified != nil {
		set["isVerified"] = *upd.IsVerified
	}
	if upd.ListingType != nil {
		set["listingType"] = *upd.ListingType
	}
	return set
}
