package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryItem is a single captioned image. Gallery items have no slug and
// are addressed by ID only.
type GalleryItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Image    string             `bson:"image" json:"image"`
	Caption  string             `bson:"caption,omitempty" json:"caption,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
