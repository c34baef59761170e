package httpx

import (
	"errors"
	"net/http"

	"github.com/ariefcatur/restopro-backoffice/internal/menu"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	Catalog *menu.Catalog
}

type menuItemReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Available   *bool   `json:"available"`
}

func (q menuItemReq) toItem(id string) menu.MenuItem {
	available := true
	if q.Available != nil {
		available = *q.Available
	}
	return menu.MenuItem{
		ID: id, Name: q.Name, Description: q.Description, Price: q.Price,
		Category: q.Category, Image: q.Image, Available: available,
	}
}

func (h *MenuHandler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/menu", h.list)
	r.Get("/menu/categories", h.categories)
	r.Get("/menu/{id}", h.get)
	guarded(r, guard, func(r chi.Router) {
		r.Post("/menu", h.create)
		r.Put("/menu/{id}", h.update)
		r.Post("/menu/{id}/toggle", h.toggle)
		r.Delete("/menu/{id}", h.delete)
	})
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.Catalog.List(q.Get("category"), q.Get("q")))
}

func (h *MenuHandler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, append([]string{menu.CategoryAll}, menu.Categories...))
}

func (h *MenuHandler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MenuHandler) create(w http.ResponseWriter, r *http.Request) {
	var req menuItemReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.Catalog.Create(r.Context(), req.toItem(""))
	if err != nil {
		writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request) {
	var req menuItemReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.Catalog.Update(r.Context(), req.toItem(chi.URLParam(r, "id")))
	if err != nil {
		writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MenuHandler) toggle(w http.ResponseWriter, r *http.Request) {
	m, err := h.Catalog.ToggleAvailable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MenuHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeMenuError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeMenuError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, menu.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
