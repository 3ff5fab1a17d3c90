package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentItem is the shared shape of services, awards, news and workshops.
// Each kind lives in its own collection; see ContentKind.
type ContentItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"` // markdown
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Features    []string           `bson:"features" json:"features"`
	IsActive    bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// ContentKind identifies one of the slugged content collections.
type ContentKind string

const (
	KindService  ContentKind = "services"
	KindAward    ContentKind = "awards"
	KindNews     ContentKind = "news"
	KindWorkshop ContentKind = "workshops"
)

// ContentKinds lists every slugged content kind in menu order.
var ContentKinds = []ContentKind{KindService, KindWorkshop, KindNews, KindAward}

// Collection is the Mongo collection backing the kind.
func (k ContentKind) Collection() string {
	return string(k)
}

// Path is the URL segment used by the API, admin and public pages.
func (k ContentKind) Path() string {
	return string(k)
}

// Plural is the human label for a list of items of this kind.
func (k ContentKind) Plural() string {
	switch k {
	case KindService:
		return "Services"
	case KindAward:
		return "Awards"
	case KindNews:
		return "News"
	case KindWorkshop:
		return "Workshops"
	}
	return string(k)
}

// Singular is the human label for one item of this kind.
func (k ContentKind) Singular() string {
	switch k {
	case KindService:
		return "Service"
	case KindAward:
		return "Award"
	case KindNews:
		return "News article"
	case KindWorkshop:
		return "Workshop"
	}
	return string(k)
}

// IsValid reports whether k is a known content kind.
func (k ContentKind) IsValid() bool {
	for _, known := range ContentKinds {
		if k == known {
			return true
		}
	}
	return false
}
