package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/vastusite/internal/domain/models"
)

// Resource is the typed CRUD surface of one collection.
type Resource[T any] struct {
	c    *Client
	path string
}

// SlugResource adds lookup by slug for the content kinds.
type SlugResource[T any] struct {
	Resource[T]
}

// Name is the URL segment, e.g. "products".
func (r Resource[T]) Name() string { return r.path }

// List returns the active items, newest first. Hidden items are reachable
// only through Get.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, "/"+r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one item by id.
func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, "/"+r.path+"/"+escape(id), nil, &out)
	return out, err
}

// Create posts body (a T, a map or raw JSON) and returns the stored item.
func (r Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, "/"+r.path, body, &out)
	return out, err
}

// Update sends a partial document; fields left out keep their values.
func (r Resource[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, "/"+r.path+"/"+escape(id), body, &out)
	return out, err
}

// Delete removes one item.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/"+r.path+"/"+escape(id), nil, nil)
}

// GetBySlug fetches one item by slug.
func (r SlugResource[T]) GetBySlug(ctx context.Context, slug string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, "/"+r.path+"/slug/"+escape(slug), nil, &out)
	return out, err
}

// Content returns the resource for one content kind.
func (c *Client) Content(kind models.ContentKind) SlugResource[models.ContentItem] {
	return SlugResource[models.ContentItem]{Resource[models.ContentItem]{c: c, path: kind.Path()}}
}

// Services, Awards, News and Workshops are shorthands for Content.
func (c *Client) Services() SlugResource[models.ContentItem]  { return c.Content(models.KindService) }
func (c *Client) Awards() SlugResource[models.ContentItem]    { return c.Content(models.KindAward) }
func (c *Client) News() SlugResource[models.ContentItem]      { return c.Content(models.KindNews) }
func (c *Client) Workshops() SlugResource[models.ContentItem] { return c.Content(models.KindWorkshop) }

// Products is the product catalogue.
func (c *Client) Products() Resource[models.Product] {
	return Resource[models.Product]{c: c, path: "products"}
}

// Testimonials is the testimonial collection.
func (c *Client) Testimonials() Resource[models.Testimonial] {
	return Resource[models.Testimonial]{c: c, path: "testimonials"}
}

// Gallery is the gallery collection.
func (c *Client) Gallery() Resource[models.GalleryItem] {
	return Resource[models.GalleryItem]{c: c, path: "gallery"}
}

// Token is the result of Login.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges admin credentials for a bearer token and installs it on
// the client.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	var tok Token
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/token", body, &tok); err != nil {
		return Token{}, err
	}
	c.token = tok.Token
	return tok, nil
}
