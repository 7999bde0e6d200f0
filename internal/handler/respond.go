package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmtree3/Book-Giveaway-API/internal/service"
)

// errorStatus maps every domain error kind to its HTTP status code in one
// place instead of scattering conditionals across handlers. Unlisted
// errors fall through to 500.
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrUsernameRequired, http.StatusBadRequest},
	{service.ErrEmailRequired, http.StatusBadRequest},
	{service.ErrPasswordRequired, http.StatusBadRequest},
	{service.ErrDuplicateUser, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrBookNotFound, http.StatusNotFound},
	{service.ErrForbidden, http.StatusUnauthorized},
	{service.ErrSelfClaim, http.StatusBadRequest},
	{service.ErrAlreadyClaimed, http.StatusBadRequest},
	{service.ErrFilterTooShort, http.StatusBadRequest},
	{service.ErrConditionRequired, http.StatusBadRequest},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError maps a service error to its status code and writes it out.
func writeError(w http.ResponseWriter, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorResponse(err.Error()))
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
