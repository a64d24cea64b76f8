package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/montaro/algohub/internal/auth"
	"github.com/montaro/algohub/internal/services"
)

// CategoryHandler handles HTTP requests for category management. Reads take
// any authenticated session; mutations are admin-only.
type CategoryHandler struct {
	categories services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List retrieves all categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondServerError(w)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

// Create handles category creation by an admin.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())
	if !auth.CanManageCategories(principal) {
		respondMessage(w, http.StatusForbidden, "Unauthorized.")
		return
	}

	cat, err := h.categories.Create(r.FormValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConflict):
			respondMessage(w, http.StatusConflict, "Category already exists.")
		case errors.Is(err, services.ErrValidation):
			respondMessage(w, http.StatusBadRequest, "Invalid category name.")
		default:
			log.Error().Err(err).Msg("Failed to create category")
			respondServerError(w)
		}
		return
	}

	respondJSON(w, http.StatusCreated, cat)
}

// Get retrieves a single category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.categories.Get(categoryID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

// Update renames a category. A missing name keeps the current one.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	cat, err := h.categories.Get(categoryID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	if !auth.CanManageCategories(principal) {
		respondMessage(w, http.StatusForbidden, "Unauthorized.")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = cat.Name
	}

	cat, err = h.categories.Rename(cat.ID, name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

// Delete removes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cat, err := h.categories.Get(categoryID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	if !auth.CanManageCategories(principal) {
		respondMessage(w, http.StatusForbidden, "Unauthorized.")
		return
	}

	if err := h.categories.Delete(cat.ID); err != nil {
		h.respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Category successfully deleted.")
}

func (h *CategoryHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Category does not exist.")
	case errors.Is(err, services.ErrConflict):
		respondMessage(w, http.StatusConflict, "Category already exists.")
	case errors.Is(err, services.ErrValidation):
		respondMessage(w, http.StatusBadRequest, "Invalid category name.")
	default:
		log.Error().Err(err).Msg("Category operation failed")
		respondServerError(w)
	}
}

// categoryID parses the {id} route parameter. The route pattern restricts it
// to digits, so parse failures only happen on out-of-range values.
func categoryID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
