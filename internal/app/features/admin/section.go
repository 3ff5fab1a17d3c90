// internal/app/features/admin/section.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/vastusite/internal/app/features/errors"
	"github.com/dalemusser/vastusite/internal/app/store"
	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/navigation"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// listRow is one line of the shared list table.
type listRow struct {
	ID        string
	Title     string
	Detail    string
	IsActive  bool
	CreatedAt time.Time
	PublicURL string
}

type listData struct {
	viewdata.BaseVM
	Path     string
	Plural   string
	Singular string
	Rows     []listRow
}

// formData is the view model of every edit form. Only the fields the
// template for T uses are filled.
type formData[T any] struct {
	viewdata.BaseVM
	Path     string
	Singular string
	IsNew    bool
	Action   string
	Item     T
	Errors   map[string]string

	// Form-only values that don't round-trip through T.
	FeaturesText string
	PriceText    string
	Categories   []option
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// section is one admin resource. The store calls and form handling are
// supplied per resource; the page flow is shared.
type section[T any] struct {
	h        *Handler
	path     string
	plural   string
	singular string
	formTmpl string

	listFn   func(ctx context.Context) ([]T, error)
	countFn  func(ctx context.Context, filter bson.M) (int64, error)
	getFn    func(ctx context.Context, id primitive.ObjectID) (T, error)
	createFn func(ctx context.Context, v T) (T, error)
	updateFn func(ctx context.Context, v T) (T, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) error

	blank    func() T
	fromForm func(r *http.Request, dst *T) inputval.Result
	validate func(v T) inputval.Result
	idOf     func(v T) primitive.ObjectID
	row      func(v T) listRow
	// decorate fills the form-only fields from the item or the submitted form.
	decorate func(r *http.Request, fd *formData[T])
}

func (s *section[T]) routes(r chi.Router) {
	r.Get("/", s.serveList)
	r.Get("/new", s.serveNew)
	r.Post("/new", s.handleCreate)
	r.Get("/{id}/edit", s.serveEdit)
	r.Post("/{id}/edit", s.handleUpdate)
	r.Post("/{id}/delete", s.handleDelete)
}

func (s *section[T]) base() string { return "/admin/" + s.path }

func (s *section[T]) backURL(r *http.Request) string {
	return navigation.SafeBackURL(r, navigation.AdminBackURL(s.path))
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/<path>                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *section[T]) serveList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := s.buildList(ctx, w, r)
	if err != nil {
		s.h.ErrLog.LogServerError(w, r, "list "+s.path, err, "Could not load "+s.plural+".", "/admin")
		return
	}
	templates.Render(w, r, "admin_list", data)
}

func (s *section[T]) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, error) {
	items, err := s.listFn(ctx)
	if err != nil {
		return listData{}, err
	}
	rows := make([]listRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, s.row(it))
	}
	return listData{
		BaseVM:   viewdata.NewBaseVM(w, r, s.plural, "/admin"),
		Path:     s.path,
		Plural:   s.plural,
		Singular: s.singular,
		Rows:     rows,
	}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /admin/<path>/new                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *section[T]) serveNew(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, s.blank(), true, nil, "")
}

func (s *section[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", s.base())
		return
	}

	item := s.blank()
	if res := s.check(r, &item); res.HasErrors() {
		s.renderForm(w, r, http.StatusBadRequest, item, true, &res, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := s.createFn(ctx, item)
	if err != nil {
		s.saveFailed(w, r, item, true, err)
		return
	}

	s.audit(r, auditlog.EventCreated, s.idOf(created))
	s.h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, s.singular+" created.")
	http.Redirect(w, r, s.backURL(r), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /admin/<path>/{id}/edit                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *section[T]) serveEdit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.load(w, r)
	if !ok {
		return
	}
	s.renderForm(w, r, http.StatusOK, item, false, nil, "")
}

func (s *section[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	item, ok := s.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", s.base())
		return
	}

	if res := s.check(r, &item); res.HasErrors() {
		s.renderForm(w, r, http.StatusBadRequest, item, false, &res, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := s.updateFn(ctx, item); err != nil {
		s.saveFailed(w, r, item, false, err)
		return
	}

	s.audit(r, auditlog.EventUpdated, s.idOf(item))
	s.h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, s.singular+" saved.")
	http.Redirect(w, r, s.backURL(r), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/<path>/{id}/delete                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *section[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		s.h.SessionMgr.AddFlash(w, r, auth.FlashError, s.singular+" not found.")
		http.Redirect(w, r, s.backURL(r), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch err := s.deleteFn(ctx, id); {
	case errors.Is(err, store.ErrNotFound):
		s.h.SessionMgr.AddFlash(w, r, auth.FlashError, s.singular+" not found; it may already have been deleted.")
	case err != nil:
		s.h.Log.Error("delete failed", zap.String("resource", s.path), zap.String("id", id.Hex()), zap.Error(err))
		s.h.SessionMgr.AddFlash(w, r, auth.FlashError, "Could not delete the "+lower(s.singular)+". Please try again.")
	default:
		s.audit(r, auditlog.EventDeleted, id)
		s.h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, s.singular+" deleted.")
	}
	http.Redirect(w, r, s.backURL(r), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// load fetches {id}. On failure the response has been written.
func (s *section[T]) load(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, s.singular+" not found.")
		return zero, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := s.getFn(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		uierrors.RenderNotFound(w, r, s.singular+" not found.")
		return zero, false
	}
	if err != nil {
		s.h.ErrLog.LogServerError(w, r, "load "+s.path, err, "Could not load the "+lower(s.singular)+".", s.base())
		return zero, false
	}
	return item, true
}

// check reads the form into item and validates the result.
func (s *section[T]) check(r *http.Request, item *T) inputval.Result {
	res := s.fromForm(r, item)
	vr := s.validate(*item)
	for _, fe := range vr.Errors {
		if !hasField(res, fe.Field) {
			res.Add(fe.Field, fe.Message)
		}
	}
	return res
}

func (s *section[T]) saveFailed(w http.ResponseWriter, r *http.Request, item T, isNew bool, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.h.SessionMgr.AddFlash(w, r, auth.FlashError, s.singular+" not found; it may have been deleted.")
		http.Redirect(w, r, s.base(), http.StatusSeeOther)
	case errors.Is(err, store.ErrDuplicateSlug):
		res := inputval.Result{}
		res.Add("slug", "Slug is already in use.")
		s.renderForm(w, r, http.StatusBadRequest, item, isNew, &res, "")
	case errors.Is(err, contentstore.ErrBadSlug):
		res := inputval.Result{}
		res.Add("slug", "A slug could not be made from the title; please set one.")
		s.renderForm(w, r, http.StatusBadRequest, item, isNew, &res, "")
	default:
		s.h.Log.Error("save failed", zap.String("resource", s.path), zap.Error(err))
		s.renderForm(w, r, http.StatusInternalServerError, item, isNew, nil, "Could not save the "+lower(s.singular)+". Please try again.")
	}
}

func (s *section[T]) renderForm(w http.ResponseWriter, r *http.Request, status int, item T, isNew bool, res *inputval.Result, msg string) {
	viewdata.RenderStatus(w, r, status, s.formTmpl, s.buildForm(w, r, item, isNew, res, msg))
}

// buildForm assembles the form view model.
func (s *section[T]) buildForm(w http.ResponseWriter, r *http.Request, item T, isNew bool, res *inputval.Result, msg string) formData[T] {
	title := "Edit " + lower(s.singular)
	action := s.base() + "/" + s.idOf(item).Hex() + "/edit"
	if isNew {
		title = "New " + lower(s.singular)
		action = s.base() + "/new"
	}

	fd := formData[T]{
		BaseVM:   viewdata.NewBaseVM(w, r, title, s.base()),
		Path:     s.path,
		Singular: s.singular,
		IsNew:    isNew,
		Action:   action,
		Item:     item,
		Errors:   map[string]string{},
	}
	fd.BackURL = s.backURL(r)
	if res != nil {
		for _, fe := range res.Errors {
			if _, seen := fd.Errors[fe.Field]; !seen {
				fd.Errors[fe.Field] = fe.Message
			}
		}
		if msg == "" {
			msg = res.First()
		}
	}
	fd.Error = msg
	if s.decorate != nil {
		s.decorate(r, &fd)
	}
	return fd
}

func (s *section[T]) audit(r *http.Request, eventType string, id primitive.ObjectID) {
	actor := ""
	if u, ok := auth.CurrentUser(r); ok {
		actor = u.Email
	}
	s.h.Audit.Mutation(r.Context(), r, actor, "admin", s.path, eventType, id.Hex())
}

func hasField(res inputval.Result, field string) bool {
	for _, fe := range res.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}
