package api

import (
	"encoding/json"

	"github.com/dalemusser/vastusite/internal/app/system/formutil"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/spf13/cast"
)

// A patch is the JSON body of POST and PUT. Pointer fields distinguish
// "absent" from "zero" so PUT only touches what the client sent.
type patcher[T any] interface {
	apply(dst *T) inputval.Result
}

// serverFields lets clients send back a document they fetched. The values
// are ignored; the server owns these fields.
type serverFields struct {
	ID        json.RawMessage `json:"_id,omitempty"`
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
}

type contentPatch struct {
	serverFields
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Features    *[]string `json:"features"`
	IsActive    *bool     `json:"isActive"`
}

func (p contentPatch) apply(c *models.ContentItem) inputval.Result {
	setIf(&c.Title, p.Title)
	setIf(&c.Slug, p.Slug)
	setIf(&c.Description, p.Description)
	setIf(&c.Content, p.Content)
	setIf(&c.Image, p.Image)
	setIf(&c.Category, p.Category)
	setIf(&c.Features, p.Features)
	setIf(&c.IsActive, p.IsActive)
	return inputval.Result{}
}

type productPatch struct {
	serverFields
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Price       json.RawMessage `json:"price"`
	Category    *string         `json:"category"`
	IsActive    *bool           `json:"isActive"`
}

func (p productPatch) apply(dst *models.Product) inputval.Result {
	var res inputval.Result
	setIf(&dst.Title, p.Title)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Image, p.Image)
	setIf(&dst.Category, p.Category)
	setIf(&dst.IsActive, p.IsActive)
	if p.Price != nil {
		price, ok := parsePrice(p.Price)
		if !ok {
			res.Add("price", "Price must be a number.")
		} else {
			dst.Price = price
		}
	}
	return res
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch v.(type) {
	case float64, string:
	default:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !formutil.Finite(f) {
		return 0, false
	}
	return f, true
}

type testimonialPatch struct {
	serverFields
	Name        *string `json:"name"`
	Message     *string `json:"message"`
	Image       *string `json:"image"`
	Rating      *int    `json:"rating"`
	Designation *string `json:"designation"`
	IsActive    *bool   `json:"isActive"`
}

func (p testimonialPatch) apply(dst *models.Testimonial) inputval.Result {
	setIf(&dst.Name, p.Name)
	setIf(&dst.Message, p.Message)
	setIf(&dst.Image, p.Image)
	setIf(&dst.Rating, p.Rating)
	setIf(&dst.Designation, p.Designation)
	setIf(&dst.IsActive, p.IsActive)
	return inputval.Result{}
}

type galleryPatch struct {
	serverFields
	Image    *string `json:"image"`
	Caption  *string `json:"caption"`
	Category *string `json:"category"`
	IsActive *bool   `json:"isActive"`
}

func (p galleryPatch) apply(dst *models.GalleryItem) inputval.Result {
	setIf(&dst.Image, p.Image)
	setIf(&dst.Caption, p.Caption)
	setIf(&dst.Category, p.Category)
	setIf(&dst.IsActive, p.IsActive)
	return inputval.Result{}
}

func setIf[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}
