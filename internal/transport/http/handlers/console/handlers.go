package console

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"pdpconsole/internal/domain/records"
	"pdpconsole/internal/platform/report"
	"pdpconsole/internal/platform/session"
	"pdpconsole/internal/transport/http/views"
)

type Handler struct {
	Sessions *session.Store[*Views]
	Renderer *views.Renderer
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewHandler(sessions *session.Store[*Views], renderer *views.Renderer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Sessions: sessions, Renderer: renderer, Logger: logger, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Handle("/static/*", http.StripPrefix("/static", views.Static()))
	routesFor(h, breachKind).register(r)
	routesFor(h, requestKind).register(r)
}

// handleHome tears the session's views down; the next visit to a view mounts
// a fresh instance and loads it again.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Reset(r)
	h.render(w, views.PageHome, views.HomePage{Title: "Home"})
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	if err := h.Renderer.Render(w, http.StatusOK, page, data); err != nil {
		h.Logger.Error("render page failed", "page", page, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// parseForm answers oversized or malformed bodies itself and reports whether
// the handler may continue.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, "malformed form", http.StatusBadRequest)
	return false
}

type kindRoutes[T records.Record, D any, P any] struct {
	h *Handler
	k kind[T, D, P]
}

func routesFor[T records.Record, D any, P any](h *Handler, k kind[T, D, P]) kindRoutes[T, D, P] {
	return kindRoutes[T, D, P]{h: h, k: k}
}

func (kr kindRoutes[T, D, P]) register(r chi.Router) {
	r.Route(kr.k.basePath(), func(r chi.Router) {
		r.Get("/", kr.handleView)
		r.Post("/", kr.handleSubmit)
		r.Post("/reload", kr.handleReload)
		r.Post("/form/toggle", kr.handleToggle)
		r.Get("/report.pdf", kr.handleReport)
		r.Get("/{id}/delete", kr.handleConfirmDelete)
		r.Post("/{id}/delete", kr.handleDelete)
	})
}

func (kr kindRoutes[T, D, P]) view(w http.ResponseWriter, r *http.Request) *records.View[T, D, P] {
	v := kr.k.view(kr.h.Sessions.Get(w, r))
	v.Mount(r.Context())
	return v
}

func (kr kindRoutes[T, D, P]) back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, kr.k.basePath(), http.StatusSeeOther)
}

func (kr kindRoutes[T, D, P]) handleView(w http.ResponseWriter, r *http.Request) {
	v := kr.view(w, r)
	state := v.List.Snapshot()
	visible := v.Form.Visible()
	list := views.ListPage{
		Title:       kr.k.title,
		Heading:     kr.k.heading,
		BasePath:    kr.k.basePath(),
		Error:       kr.k.message(state.Err),
		FormVisible: visible,
		ToggleLabel: kr.k.toggleLabel(visible),
		Loading:     state.Loading,
		Empty:       kr.k.empty,
	}
	kr.h.render(w, kr.k.page, kr.k.render(list, state.Items, v.Form.Draft()))
}

func (kr kindRoutes[T, D, P]) handleReload(w http.ResponseWriter, r *http.Request) {
	kr.k.view(kr.h.Sessions.Get(w, r)).Reload(r.Context())
	kr.back(w, r)
}

func (kr kindRoutes[T, D, P]) handleToggle(w http.ResponseWriter, r *http.Request) {
	kr.view(w, r).Form.ToggleVisible()
	kr.back(w, r)
}

// handleSubmit applies every draft field present in the post, then submits.
// The outcome is visible on the page the redirect leads to.
func (kr kindRoutes[T, D, P]) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !kr.h.parseForm(w, r) {
		return
	}
	v := kr.view(w, r)
	for _, field := range kr.k.fields {
		if _, ok := r.PostForm[field]; !ok {
			continue
		}
		if err := v.Form.SetField(field, r.PostForm.Get(field)); err != nil {
			kr.h.Logger.Warn("form field rejected", "kind", kr.k.name, "field", field, "err", err)
		}
	}
	v.Form.Submit(r.Context())
	kr.back(w, r)
}

func (kr kindRoutes[T, D, P]) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)
	kr.h.render(w, views.PageConfirm, views.ConfirmPage{
		Title:  kr.k.title,
		Prompt: kr.k.prompt,
		Action: recordPath(kr.k.basePath(), id) + "/delete",
		Cancel: kr.k.basePath(),
	})
}

// handleDelete treats anything but confirm=yes as a declined prompt.
func (kr kindRoutes[T, D, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !kr.h.parseForm(w, r) {
		return
	}
	id := recordID(r)
	answer := r.PostForm.Get("confirm")
	kr.view(w, r).List.Delete(r.Context(), id, records.ConfirmFunc(func(string) bool {
		return answer == "yes"
	}))
	kr.back(w, r)
}

// handleReport renders the list the view currently shows; it does not fetch.
func (kr kindRoutes[T, D, P]) handleReport(w http.ResponseWriter, r *http.Request) {
	state := kr.view(w, r).List.Snapshot()
	table := kr.k.table(state.Items)
	table.Generated = kr.h.Now()

	var buf bytes.Buffer
	if err := report.Render(&buf, table); err != nil {
		kr.h.Logger.Error("render report failed", "kind", kr.k.name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-register.pdf", kr.k.name))
	if _, err := buf.WriteTo(w); err != nil {
		kr.h.Logger.Warn("write report failed", "kind", kr.k.name, "err", err)
	}
}

func recordID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
