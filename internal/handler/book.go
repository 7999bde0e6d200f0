package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmtree3/Book-Giveaway-API/internal/middleware"
	"github.com/dmtree3/Book-Giveaway-API/internal/model"
	"github.com/dmtree3/Book-Giveaway-API/internal/service"
)

// BookHandler handles HTTP requests for book listing operations.
type BookHandler struct {
	service *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{service: svc}
}

// HandleListBooks handles GET /books/ requests.
func (h *BookHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	books, err := h.service.ListBooks(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSummaries(w, books)
}

// HandleBooksByGenre handles GET /books/by_genre requests.
func (h *BookHandler) HandleBooksByGenre(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.BooksByGenre(r.Context(), r.URL.Query().Get("genre"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSummaries(w, books)
}

// HandleBooksByAuthor handles GET /books/by_author requests.
func (h *BookHandler) HandleBooksByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.BooksByAuthor(r.Context(), r.URL.Query().Get("author"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSummaries(w, books)
}

// HandleBooksByCondition handles GET /books/by_condition requests.
func (h *BookHandler) HandleBooksByCondition(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.BooksByCondition(r.Context(), r.URL.Query().Get("condition"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSummaries(w, books)
}

// HandleGetBook handles GET /books/{book_id} requests.
func (h *BookHandler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseID(r, "book_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid book id"))
		return
	}

	resp, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAddBook handles POST /add_book requests. The authenticated caller
// becomes the owner of the new listing.
func (h *BookHandler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.CreateBook(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdateBook handles PUT /update_book/{book_id} requests. Fields
// absent from the body are left unchanged; only the owner may update.
func (h *BookHandler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	bookID, err := parseID(r, "book_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid book id"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.UpdateBook(r.Context(), userID, bookID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteBook handles DELETE /delete_book/{book_id} requests and
// responds with the caller's remaining listings.
func (h *BookHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	bookID, err := parseID(r, "book_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid book id"))
		return
	}

	remaining, err := h.service.DeleteBook(r.Context(), userID, bookID)
	if err != nil {
		writeError(w, err)
		return
	}

	if remaining == nil {
		remaining = []model.BookResponse{}
	}
	writeJSON(w, http.StatusAccepted, remaining)
}

// HandleExpressInterest handles POST /express_interest/{book_id} requests.
func (h *BookHandler) HandleExpressInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	bookID, err := parseID(r, "book_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid book id"))
		return
	}

	resp, err := h.service.ExpressInterest(r.Context(), userID, bookID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func writeSummaries(w http.ResponseWriter, books []model.BookSummary) {
	if books == nil {
		books = []model.BookSummary{}
	}
	writeJSON(w, http.StatusOK, books)
}
