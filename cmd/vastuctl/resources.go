package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/vastusite/internal/apiclient"
	"github.com/dalemusser/vastusite/internal/domain/models"
)

// ops erases the item type so every resource can share one command set.
type ops struct {
	list   func(ctx context.Context) (any, error)
	get    func(ctx context.Context, id string) (any, error)
	bySlug func(ctx context.Context, slug string) (any, error) // nil without slugs
	create func(ctx context.Context, body json.RawMessage) (any, error)
	update func(ctx context.Context, id string, body json.RawMessage) (any, error)
	del    func(ctx context.Context, id string) error
}

func opsFor[T any](r apiclient.Resource[T]) ops {
	return ops{
		list: func(ctx context.Context) (any, error) { return r.List(ctx) },
		get:  func(ctx context.Context, id string) (any, error) { return r.Get(ctx, id) },
		create: func(ctx context.Context, body json.RawMessage) (any, error) {
			return r.Create(ctx, body)
		},
		update: func(ctx context.Context, id string, body json.RawMessage) (any, error) {
			return r.Update(ctx, id, body)
		},
		del: r.Delete,
	}
}

func slugOpsFor[T any](r apiclient.SlugResource[T]) ops {
	o := opsFor(r.Resource)
	o.bySlug = func(ctx context.Context, slug string) (any, error) { return r.GetBySlug(ctx, slug) }
	return o
}

func resourceTable(c *apiclient.Client) map[string]ops {
	t := map[string]ops{
		"products":     opsFor(c.Products()),
		"testimonials": opsFor(c.Testimonials()),
		"gallery":      opsFor(c.Gallery()),
	}
	for _, kind := range models.ContentKinds {
		t[kind.Path()] = slugOpsFor(c.Content(kind))
	}
	return t
}

func resourceNames() []string {
	names := []string{"products", "testimonials", "gallery"}
	for _, kind := range models.ContentKinds {
		names = append(names, kind.Path())
	}
	sort.Strings(names)
	return names
}

func lookup(c *apiclient.Client, name string) (ops, error) {
	o, ok := resourceTable(c)[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ops{}, fmt.Errorf("unknown resource %q (want one of %s)", name, strings.Join(resourceNames(), ", "))
	}
	return o, nil
}
