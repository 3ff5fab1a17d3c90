package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds for testimonials.
const (
	MinRating = 1
	MaxRating = 5
)

type Testimonial struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Message     string             `bson:"message" json:"message"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Rating      int                `bson:"rating" json:"rating"`
	Designation string             `bson:"designation,omitempty" json:"designation,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// DefaultTestimonials are shown on the public site when none can be loaded.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{
			Name:        "Priya Sharma",
			Message:     "The Vastu consultation for our new home was thorough and practical. We felt the difference within weeks.",
			Rating:      5,
			Designation: "Homeowner, Pune",
			IsActive:    true,
		},
		{
			Name:        "Rajesh Mehta",
			Message:     "Clear guidance on our office layout without any demolition. Highly recommended.",
			Rating:      5,
			Designation: "Business owner, Mumbai",
			IsActive:    true,
		},
	}
}
