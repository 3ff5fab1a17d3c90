package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/vastusite/internal/app/store"
	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	"github.com/dalemusser/vastusite/internal/app/system/apierr"
	"github.com/dalemusser/vastusite/internal/app/system/apitoken"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resource serves the six JSON routes of one collection. T is the stored
// document and P the request body that patches it.
type resource[T any, P patcher[T]] struct {
	h        *Handler
	name     string // URL segment and audit resource name
	singular string

	listFn   func(ctx context.Context) ([]T, error)
	getFn    func(ctx context.Context, id primitive.ObjectID) (T, error)
	slugFn   func(ctx context.Context, slug string) (T, error) // nil when the resource has no slugs
	createFn func(ctx context.Context, v T) (T, error)
	updateFn func(ctx context.Context, v T) (T, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) error

	blank    func() T
	validate func(v T) inputval.Result
	idOf     func(v T) primitive.ObjectID
}

func (res *resource[T, P]) routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", res.serveList)
	if res.slugFn != nil {
		r.Get("/slug/{slug}", res.serveBySlug)
	}
	r.Get("/{id}", res.serveGet)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", res.handleCreate)
		r.Put("/{id}", res.handleUpdate)
		r.Delete("/{id}", res.handleDelete)
	})
	return r
}

// GET /api/<resource>
func (res *resource[T, P]) serveList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := res.listFn(ctx)
	if err != nil {
		apierr.Internal(w, r, res.h.Log, "list "+res.name, err)
		return
	}
	apierr.JSON(w, http.StatusOK, items)
}

// GET /api/<resource>/{id}
func (res *resource[T, P]) serveGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		apierr.NotFound(w, r, res.singular+" not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := res.getFn(ctx, id)
	if err != nil {
		res.storeError(w, r, "get "+res.name, err)
		return
	}
	apierr.JSON(w, http.StatusOK, item)
}

// GET /api/<resource>/slug/{slug}
func (res *resource[T, P]) serveBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := res.slugFn(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		res.storeError(w, r, "get "+res.name+" by slug", err)
		return
	}
	apierr.JSON(w, http.StatusOK, item)
}

// POST /api/<resource>
func (res *resource[T, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var patch P
	if !decodeJSON(w, r, &patch) {
		return
	}

	item := res.blank()
	if !res.check(w, r, patch, &item) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := res.createFn(ctx, item)
	if err != nil {
		res.storeError(w, r, "create "+res.name, err)
		return
	}
	res.audit(r, auditlog.EventCreated, res.idOf(created))
	apierr.JSON(w, http.StatusCreated, created)
}

// PUT /api/<resource>/{id}
//
// Absent fields keep their stored values; the merged document must pass
// the same rules as a create.
func (res *resource[T, P]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		apierr.NotFound(w, r, res.singular+" not found.")
		return
	}

	var patch P
	if !decodeJSON(w, r, &patch) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := res.getFn(ctx, id)
	if err != nil {
		res.storeError(w, r, "load "+res.name, err)
		return
	}
	if !res.check(w, r, patch, &item) {
		return
	}

	updated, err := res.updateFn(ctx, item)
	if err != nil {
		res.storeError(w, r, "update "+res.name, err)
		return
	}
	res.audit(r, auditlog.EventUpdated, id)
	apierr.JSON(w, http.StatusOK, updated)
}

// DELETE /api/<resource>/{id}
func (res *resource[T, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		apierr.NotFound(w, r, res.singular+" not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := res.deleteFn(ctx, id); err != nil {
		res.storeError(w, r, "delete "+res.name, err)
		return
	}
	res.audit(r, auditlog.EventDeleted, id)
	apierr.JSON(w, http.StatusOK, map[string]string{"message": res.singular + " deleted."})
}

// check applies the patch to item and validates the result. On failure the
// 400 response has been written.
func (res *resource[T, P]) check(w http.ResponseWriter, r *http.Request, patch P, item *T) bool {
	if pr := patch.apply(item); pr.HasErrors() {
		apierr.Validation(w, r, pr)
		return false
	}
	if vr := res.validate(*item); vr.HasErrors() {
		apierr.Validation(w, r, vr)
		return false
	}
	return true
}

func (res *resource[T, P]) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		apierr.NotFound(w, r, res.singular+" not found.")
	case errors.Is(err, store.ErrDuplicateSlug):
		apierr.Validation(w, r, fieldError("slug", "Slug is already in use."))
	case errors.Is(err, contentstore.ErrBadSlug):
		apierr.Validation(w, r, fieldError("slug", "A slug could not be made from the title; please set one."))
	default:
		apierr.Internal(w, r, res.h.Log, op, err)
	}
}

func (res *resource[T, P]) audit(r *http.Request, eventType string, id primitive.ObjectID) {
	actor := ""
	if c, ok := apitoken.ClaimsFrom(r.Context()); ok {
		actor = c.Email
	}
	res.h.Audit.Mutation(r.Context(), r, actor, "api", res.name, eventType, id.Hex())
}

// parseID reads {id}. A malformed id can never match a document, so
// callers answer it with 404.
func parseID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

func fieldError(field, msg string) inputval.Result {
	var res inputval.Result
	res.Add(field, msg)
	return res
}
