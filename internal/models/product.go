package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses accepted by the CRUD API.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// SourceSeed marks records owned by the seed reconciliation pipeline. Only
// records carrying this tag are eligible for pruning when their legacyId
// disappears from the source file.
const SourceSeed = "seed"

type ProductImage struct {
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
	PublicID string `json:"publicId,omitempty" bson:"publicId,omitempty"`
	Alt      string `json:"alt,omitempty" bson:"alt,omitempty"`
}

type Product struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	SKU            string             `json:"sku,omitempty" bson:"sku,omitempty"`
	Brand          string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`
	SubCategory    string             `json:"subCategory,omitempty" bson:"subCategory,omitempty"`
	Tags           []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Price          float64            `json:"price,omitempty" bson:"price,omitempty"`
	SalePrice      *float64           `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	Stock          float64            `json:"stock" bson:"stock"`
	Status         string             `json:"status,omitempty" bson:"status,omitempty"`
	IsFeatured     bool               `json:"isFeatured" bson:"isFeatured"`
	Features       []string           `json:"features,omitempty" bson:"features,omitempty"`
	Thumbnail      *ProductImage      `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Images         []ProductImage     `json:"images,omitempty" bson:"images,omitempty"`
	Specifications bson.M             `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Metadata       bson.M             `json:"metadata,omitempty" bson:"metadata,omitempty"`

	// Fields carried by seed-imported records.
	CategoryName   string   `json:"categoryName,omitempty" bson:"categoryName,omitempty"`
	Subcategory    string   `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	ImageLinks     []string `json:"image_links,omitempty" bson:"image_links,omitempty"`
	Colors         []string `json:"colors,omitempty" bson:"colors,omitempty"`
	AvailableSizes []string `json:"available_sizes,omitempty" bson:"available_sizes,omitempty"`
	Rating         float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	IsBestseller   bool     `json:"isBestseller,omitempty" bson:"isBestseller,omitempty"`
	Source         string   `json:"source,omitempty" bson:"source,omitempty"`
	LegacyID       string   `json:"legacyId,omitempty" bson:"legacyId,omitempty"`
	Slug           string   `json:"slug,omitempty" bson:"slug,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ValidStatus reports whether s is one of the accepted product statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusInactive:
		return true
	}
	return false
}
