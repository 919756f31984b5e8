package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a listing. PropID is the caller-assigned public identifier
// (e.g. "PROP1001"), distinct from the Mongo _id.
type Property struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropID        string             `bson:"id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Type          string             `bson:"type" json:"type"`
	Price         float64            `bson:"price" json:"price"`
	State         string             `bson:"state" json:"state"`
	City          string             `bson:"city" json:"city"`
	AreaSqFt      float64            `bson:"areaSqFt" json:"areaSqFt"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Furnished     string             `bson:"furnished,omitempty" json:"furnished,omitempty"`
	AvailableFrom time.Time          `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	ListedBy      string             `bson:"listedBy,omitempty" json:"listedBy,omitempty"`
	Tags          []string           `bson:"tags" json:"tags"`
	ColorTheme    string             `bson:"colorTheme,omitempty" json:"colorTheme,omitempty"`
	Rating        float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	IsVerified    bool               `bson:"isVerified" json:"isVerified"`
	ListingType   string             `bson:"listingType" json:"listingType"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreatePropertyRequest struct {
	PropID        string    `json:"id" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Type          string    `json:"type" validate:"required"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	State         string    `json:"state" validate:"required"`
	City          string    `json:"city" validate:"required"`
	AreaSqFt      float64   `json:"areaSqFt" validate:"required,gt=0"`
	Bedrooms      int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int       `json:"bathrooms" validate:"gte=0"`
	Amenities     []string  `json:"amenities"`
	Furnished     string    `json:"furnished"`
	AvailableFrom time.Time `json:"availableFrom"`
	ListedBy      string    `json:"listedBy"`
	Tags          []string  `json:"tags"`
	ColorTheme    string    `json:"colorTheme"`
	Rating        float64   `json:"rating"`
	IsVerified    bool      `json:"isVerified"`
	ListingType   string    `json:"listingType" validate:"required,oneof=sale rent"`
}

// UpdatePropertyRequest carries the mutable subset of Property; nil fields
// are left untouched. The public id, creator and timestamps are never
// caller-writable.
type UpdatePropertyRequest struct {
	Title         *string    `json:"title,omitempty"`
	Type          *string    `json:"type,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	State         *string    `json:"state,omitempty"`
	City          *string    `json:"city,omitempty"`
	AreaSqFt      *float64   `json:"areaSqFt,omitempty"`
	Bedrooms      *int       `json:"bedrooms,omitempty"`
	Bathrooms     *int       `json:"bathrooms,omitempty"`
	Amenities     *[]string  `json:"amenities,omitempty"`
	Furnished     *string    `json:"furnished,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	ListedBy      *string    `json:"listedBy,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	ColorTheme    *string    `json:"colorTheme,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	IsVerified    *bool      `json:"isVerified,omitempty"`
	ListingType   *string    `json:"listingType,omitempty"`
}

// PropertyFilter enumerates the supported list-query dimensions. The filter
// set is closed; unset fields do not constrain the query and do not appear
// in the derived cache key.
type PropertyFilter struct {
	Type        string
	State       string
	City        string
	ListingType string
	ListedBy    string
	PriceMin    *float64
	PriceMax    *float64
	Bedrooms    *int
	Bathrooms   *int
	AreaMin     *float64
	AreaMax     *float64
	Amenities   []string
	Tags        []string
	IsVerified  *bool
	Page        int
	Limit       int
}

type PropertyList struct {
	Properties []Property `json:"properties"`
	Total      int64      `json:"total"`
}
