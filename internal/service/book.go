package service

import (
	"context"
	"errors"

	"github.com/dmtree3/Book-Giveaway-API/internal/model"
	"github.com/dmtree3/Book-Giveaway-API/internal/repository"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrForbidden         = errors.New("you can only modify your own books")
	ErrSelfClaim         = errors.New("you cannot express interest in your own book")
	ErrAlreadyClaimed    = errors.New("book already has an interested user")
	ErrFilterTooShort    = errors.New("filter value must be at least 3 characters")
	ErrConditionRequired = errors.New("condition is required")
)

const (
	defaultPageLimit = 50
	minFilterLength  = 3
)

// BookService handles book listing business logic.
type BookService struct {
	repo *repository.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo *repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// CreateBook lists a new book owned by the caller.
func (s *BookService) CreateBook(ctx context.Context, ownerID int64, req model.CreateBookRequest) (model.BookResponse, error) {
	book := &model.Book{
		Title:          req.Title,
		Author:         req.Author,
		Genre:          req.Genre,
		Condition:      req.Condition,
		PickupLocation: req.PickupLocation,
		OwnerID:        ownerID,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return book.ToResponse(), nil
}

// GetBook returns a single book by id.
func (s *BookService) GetBook(ctx context.Context, id int64) (model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}
	return book.ToResponse(), nil
}

// ListBooks returns a page of book listings.
func (s *BookService) ListBooks(ctx context.Context, skip, limit int) ([]model.BookSummary, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}

	books, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return booksToSummaries(books), nil
}

// BooksByGenre returns all books of a genre. The filter must be at least
// three characters.
func (s *BookService) BooksByGenre(ctx context.Context, genre string) ([]model.BookSummary, error) {
	if len(genre) < minFilterLength {
		return nil, ErrFilterTooShort
	}

	books, err := s.repo.ListByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return booksToSummaries(books), nil
}

// BooksByAuthor returns all books by an author. The filter must be at
// least three characters.
func (s *BookService) BooksByAuthor(ctx context.Context, author string) ([]model.BookSummary, error) {
	if len(author) < minFilterLength {
		return nil, ErrFilterTooShort
	}

	books, err := s.repo.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return booksToSummaries(books), nil
}

// BooksByCondition returns all books in the given condition.
func (s *BookService) BooksByCondition(ctx context.Context, condition string) ([]model.BookSummary, error) {
	if condition == "" {
		return nil, ErrConditionRequired
	}

	books, err := s.repo.ListByCondition(ctx, condition)
	if err != nil {
		return nil, err
	}
	return booksToSummaries(books), nil
}

// UpdateBook applies a partial update to a book's descriptive fields.
// Only the owner may update a book; fields absent from the request are
// left unchanged.
func (s *BookService) UpdateBook(ctx context.Context, callerID, bookID int64, req model.UpdateBookRequest) (model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}

	if book.OwnerID != callerID {
		return model.BookResponse{}, ErrForbidden
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Condition != nil {
		book.Condition = *req.Condition
	}
	if req.PickupLocation != nil {
		book.PickupLocation = *req.PickupLocation
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return book.ToResponse(), nil
}

// DeleteBook removes a book owned by the caller and returns the caller's
// remaining listings.
func (s *BookService) DeleteBook(ctx context.Context, callerID, bookID int64) ([]model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if book.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if err := s.repo.Delete(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	remaining, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.BookResponse, len(remaining))
	for i, b := range remaining {
		result[i] = b.ToResponse()
	}
	return result, nil
}

// ExpressInterest records the caller as the one-time claimant of a book.
// Owners cannot claim their own listing and a claimed book stays claimed.
func (s *BookService) ExpressInterest(ctx context.Context, callerID, bookID int64) (model.BookResponse, error) {
	book, err := s.repo.Claim(ctx, bookID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotFound):
			return model.BookResponse{}, ErrBookNotFound
		case errors.Is(err, repository.ErrSelfClaim):
			return model.BookResponse{}, ErrSelfClaim
		case errors.Is(err, repository.ErrAlreadyClaimed):
			return model.BookResponse{}, ErrAlreadyClaimed
		default:
			return model.BookResponse{}, err
		}
	}

	return book.ToResponse(), nil
}

// booksToSummaries converts book rows to their listing shape.
func booksToSummaries(books []model.Book) []model.BookSummary {
	result := make([]model.BookSummary, len(books))
	for i, b := range books {
		result[i] = b.ToSummary()
	}
	return result
}
