package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/montaro/algohub/internal/auth"
	"github.com/montaro/algohub/internal/models"
	"github.com/montaro/algohub/internal/services"
)

// AlgorithmHandler handles HTTP requests for algorithm records. Reads are
// public; creation takes a session and mutation is owner-only.
type AlgorithmHandler struct {
	algorithms services.AlgorithmServiceProvider
}

// NewAlgorithmHandler creates a new AlgorithmHandler.
func NewAlgorithmHandler(algorithms services.AlgorithmServiceProvider) *AlgorithmHandler {
	return &AlgorithmHandler{algorithms: algorithms}
}

// ListPublic retrieves every publicly visible algorithm.
func (h *AlgorithmHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	algos, err := h.algorithms.ListPublic()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list public algorithms")
		respondServerError(w)
		return
	}
	respondJSON(w, http.StatusOK, algos)
}

// Create handles algorithm creation by the authenticated principal. The
// owner is always the caller, never client-supplied input.
func (h *AlgorithmHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Login required.")
		return
	}

	title := r.FormValue("title")
	categoryID, err := strconv.ParseInt(r.FormValue("category"), 10, 64)
	if title == "" || err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid title or category id.")
		return
	}

	algo, err := h.algorithms.Create(title, r.FormValue("content"), r.FormValue("sub_category"), categoryID, principal.ID)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondMessage(w, http.StatusBadRequest, "Invalid title or category id.")
			return
		}
		log.Error().Err(err).Int64("user_id", principal.ID).Msg("Failed to create algorithm")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusCreated, algo)
}

// Get retrieves a single algorithm.
func (h *AlgorithmHandler) Get(w http.ResponseWriter, r *http.Request) {
	algo, err := h.algorithms.Get(algorithmID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, algo)
}

// Update applies a partial update to an algorithm owned by the caller.
func (h *AlgorithmHandler) Update(w http.ResponseWriter, r *http.Request) {
	algo, err := h.algorithms.Get(algorithmID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	if !auth.CanModifyAlgorithm(principal, algo) {
		respondMessage(w, http.StatusForbidden, "Unauthorized.")
		return
	}

	patch, ok := algorithmPatch(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid title or category id.")
		return
	}

	algo, err = h.algorithms.Update(algo.ID, patch)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondMessage(w, http.StatusBadRequest, "Invalid title or category id.")
			return
		}
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, algo)
}

// Delete removes an algorithm owned by the caller.
func (h *AlgorithmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	algo, err := h.algorithms.Get(algorithmID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	if !auth.CanModifyAlgorithm(principal, algo) {
		respondMessage(w, http.StatusForbidden, "Unauthorized.")
		return
	}

	if err := h.algorithms.Delete(algo.ID); err != nil {
		h.respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Algorithm successfully deleted.")
}

func (h *AlgorithmHandler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Algorithm does not exist.")
		return
	}
	log.Error().Err(err).Msg("Algorithm operation failed")
	respondServerError(w)
}

// algorithmPatch builds an explicit patch from the fields present in the
// form body. Absent fields stay nil and keep their stored value.
func algorithmPatch(r *http.Request) (models.AlgorithmPatch, bool) {
	var patch models.AlgorithmPatch
	if err := r.ParseForm(); err != nil {
		return patch, false
	}

	if v, ok := formField(r, "title"); ok {
		patch.Title = &v
	}
	if v, ok := formField(r, "content"); ok {
		patch.Content = &v
	}
	if v, ok := formField(r, "sub_category"); ok {
		patch.SubCategory = &v
	}
	if v, ok := formField(r, "access"); ok {
		patch.Access = &v
	}
	if v, ok := formField(r, "category"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return patch, false
		}
		patch.CategoryID = &id
	}
	return patch, true
}

func formField(r *http.Request, key string) (string, bool) {
	vals, ok := r.Form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func algorithmID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "algoID"), 10, 64)
	return id
}
