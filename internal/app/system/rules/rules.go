// Package rules holds the field rules for each resource. The admin forms
// and the JSON API both validate the final document with these, so a
// partial API update is checked against the merged result.
package rules

import (
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/domain/models"
)

type contentRules struct {
	Title       string   `json:"title" validate:"required,max=200" label:"Title"`
	Slug        string   `json:"slug" validate:"omitempty,max=200,slug" label:"Slug"`
	Description string   `json:"description" validate:"required,max=2000" label:"Description"`
	Content     string   `json:"content" validate:"max=100000" label:"Content"`
	Image       string   `json:"image" validate:"omitempty,imageurl" label:"Image"`
	Category    string   `json:"category" validate:"max=100" label:"Category"`
	Features    []string `json:"features" validate:"max=50" label:"Features"`
}

// Content validates a service, award, news article or workshop.
// An empty slug is allowed; the store derives one from the title.
func Content(c models.ContentItem) inputval.Result {
	return inputval.Validate(contentRules{
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Content:     c.Content,
		Image:       c.Image,
		Category:    c.Category,
		Features:    c.Features,
	})
}

type productRules struct {
	Title       string  `json:"title" validate:"required,max=200" label:"Title"`
	Description string  `json:"description" validate:"max=5000" label:"Description"`
	Image       string  `json:"image" validate:"omitempty,imageurl" label:"Image"`
	Price       float64 `json:"price" validate:"gte=0" label:"Price"`
	Category    string  `json:"category" validate:"omitempty,productcategory" label:"Category"`
}

// Product validates a product. An empty category is allowed and becomes
// the default category on save.
func Product(p models.Product) inputval.Result {
	return inputval.Validate(productRules{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category,
	})
}

type testimonialRules struct {
	Name        string `json:"name" validate:"required,max=120" label:"Name"`
	Message     string `json:"message" validate:"required,max=3000" label:"Message"`
	Image       string `json:"image" validate:"omitempty,imageurl" label:"Image"`
	Rating      int    `json:"rating" validate:"min=1,max=5" label:"Rating"`
	Designation string `json:"designation" validate:"max=200" label:"Designation"`
}

// Testimonial validates a testimonial; the rating must be 1 to 5.
func Testimonial(t models.Testimonial) inputval.Result {
	return inputval.Validate(testimonialRules{
		Name:        t.Name,
		Message:     t.Message,
		Image:       t.Image,
		Rating:      t.Rating,
		Designation: t.Designation,
	})
}

type galleryRules struct {
	Image    string `json:"image" validate:"required,imageurl" label:"Image"`
	Caption  string `json:"caption" validate:"max=300" label:"Caption"`
	Category string `json:"category" validate:"max=100" label:"Category"`
}

// GalleryItem validates a gallery entry.
func GalleryItem(g models.GalleryItem) inputval.Result {
	return inputval.Validate(galleryRules{
		Image:    g.Image,
		Caption:  g.Caption,
		Category: g.Category,
	})
}
