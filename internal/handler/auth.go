package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmtree3/Book-Giveaway-API/internal/model"
	"github.com/dmtree3/Book-Giveaway-API/internal/service"
)

// AuthHandler handles HTTP requests for authentication and user lookups.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleToken handles POST /token requests. Credentials arrive
// form-encoded; the response carries a bearer token.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	resp, err := h.service.Authenticate(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateUser handles POST /create_user requests.
func (h *AuthHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleListUsers handles GET /users/ requests.
func (h *AuthHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	users, err := h.service.ListUsers(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	if users == nil {
		users = []model.UserSummary{}
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGetUserByID handles GET /users/id/{user_id} requests.
func (h *AuthHandler) HandleGetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "user_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	resp, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetUserByUsername handles GET /users/username/{username} requests.
func (h *AuthHandler) HandleGetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := h.service.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUserBooks handles GET /users/{user_id}/books requests.
func (h *AuthHandler) HandleUserBooks(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "user_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	books, err := h.service.UserBooks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if books == nil {
		books = []model.BookResponse{}
	}
	writeJSON(w, http.StatusOK, books)
}

// parseID extracts a non-negative numeric URL parameter.
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// parsePagination reads skip/limit query parameters with the listing
// defaults (skip 0, limit 50).
func parsePagination(r *http.Request) (skip, limit int) {
	skip = 0
	limit = 50

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}
