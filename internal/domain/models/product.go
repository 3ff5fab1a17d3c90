package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	IsActive    bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Product categories. Category is a closed set; the admin form and the
// collection validator are both built from ProductCategories.
const (
	ProductCategoryYantra    = "yantra"
	ProductCategoryGemstone  = "gemstone"
	ProductCategoryRudraksha = "rudraksha"
	ProductCategoryRemedy    = "remedy"
	ProductCategoryBook      = "book"
	ProductCategoryOther     = "other"
)

// DefaultProductCategory is used when a product is created without one.
const DefaultProductCategory = ProductCategoryOther

var ProductCategories = []string{
	ProductCategoryYantra,
	ProductCategoryGemstone,
	ProductCategoryRudraksha,
	ProductCategoryRemedy,
	ProductCategoryBook,
	ProductCategoryOther,
}

// ProductCategoryLabel returns the display label for a category.
func ProductCategoryLabel(c string) string {
	switch c {
	case ProductCategoryYantra:
		return "Yantras"
	case ProductCategoryGemstone:
		return "Gemstones"
	case ProductCategoryRudraksha:
		return "Rudraksha"
	case ProductCategoryRemedy:
		return "Vastu remedies"
	case ProductCategoryBook:
		return "Books"
	case ProductCategoryOther:
		return "Other"
	}
	return c
}

// IsValidProductCategory reports whether c is one of ProductCategories.
func IsValidProductCategory(c string) bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}
