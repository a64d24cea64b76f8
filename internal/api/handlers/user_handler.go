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

// UserHandler handles registration, sessions and per-user listings.
type UserHandler struct {
	users      services.UserServiceProvider
	algorithms services.AlgorithmServiceProvider
	tokens     *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, algorithms services.AlgorithmServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{users: users, algorithms: algorithms, tokens: tokens}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := h.users.Register(email, password)
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrConflict) {
			respondMessage(w, http.StatusBadRequest, "Invalid username or password.")
			return
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to register user")
		respondServerError(w)
		return
	}

	respondMessage(w, http.StatusCreated, "Registration successful.")
}

// Login authenticates a user and opens a session.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.users.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", email).Msg("Failed authentication attempt")
			respondMessage(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to authenticate user")
		respondServerError(w)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate session token")
		respondServerError(w)
		return
	}

	h.tokens.SetSessionCookie(w, token)
	respondMessage(w, http.StatusOK, "Login successful.")
}

// Logout closes the session. Always succeeds, even without one.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearSessionCookie(w)
	respondMessage(w, http.StatusOK, "Logged out.")
}

// ListAlgorithms returns the algorithms owned by a user. The target defaults
// to the caller; an explicit {id} lists that user's algorithms instead, with
// no ownership check on the read.
func (h *UserHandler) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Login required.")
		return
	}

	target := principal.ID
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			respondMessage(w, http.StatusNotFound, "User does not exist.")
			return
		}
		target = id
	}

	algos, err := h.algorithms.ListByUser(target)
	if err != nil {
		log.Error().Err(err).Int64("user_id", target).Msg("Failed to list user algorithms")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, algos)
}
