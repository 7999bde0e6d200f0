package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmtree3/Book-Giveaway-API/internal/model"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrSelfClaim      = errors.New("cannot express interest in your own book")
	ErrAlreadyClaimed = errors.New("book already has an interested user")
)

// BookRepository handles book persistence operations.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, title, author, genre, book_condition, pickup_location, owner_id, claimant_id, created_at, updated_at`

// Create inserts a new book listing and sets the generated ID on the book struct.
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `INSERT INTO books (title, author, genre, book_condition, pickup_location, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Genre, book.Condition, book.PickupLocation, book.OwnerID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	book.ID = id
	return nil
}

// GetByID retrieves a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	book := &model.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Genre, &book.Condition,
		&book.PickupLocation, &book.OwnerID, &book.ClaimantID, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	return book, nil
}

// List retrieves a page of book listings ordered by id.
func (r *BookRepository) List(ctx context.Context, skip, limit int) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id LIMIT ? OFFSET ?`
	return r.queryBooks(ctx, query, limit, skip)
}

// ListByGenre retrieves all books with the given genre.
func (r *BookRepository) ListByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE genre = ? ORDER BY id`
	return r.queryBooks(ctx, query, genre)
}

// ListByAuthor retrieves all books with the given author.
func (r *BookRepository) ListByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author = ? ORDER BY id`
	return r.queryBooks(ctx, query, author)
}

// ListByCondition retrieves all books with the given condition.
func (r *BookRepository) ListByCondition(ctx context.Context, condition string) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_condition = ? ORDER BY id`
	return r.queryBooks(ctx, query, condition)
}

// ListByOwner retrieves all books listed by the given user.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner_id = ? ORDER BY id`
	return r.queryBooks(ctx, query, ownerID)
}

// Update persists the descriptive fields of a book. Ownership and claim
// columns are never touched here.
func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `UPDATE books SET title = ?, author = ?, genre = ?, book_condition = ?, pickup_location = ?
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Genre, book.Condition, book.PickupLocation, book.ID,
	)
	return err
}

// Delete removes a book listing.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}

// claimQuery sets the claimant only when the book is unclaimed and not
// owned by the claimant. The database executes the check and the write as
// one atomic statement, so of two concurrent claimants exactly one wins.
const claimQuery = `UPDATE books SET claimant_id = ?
	WHERE id = ? AND claimant_id IS NULL AND owner_id <> ?`

// Claim records a user's interest in a book. On success the updated book
// is returned. A rejected claim is classified by re-reading the row; the
// transition is one-way, so the classification cannot be invalidated by a
// concurrent writer.
func (r *BookRepository) Claim(ctx context.Context, bookID, claimantID int64) (*model.Book, error) {
	result, err := r.db.ExecContext(ctx, claimQuery, claimantID, bookID, claimantID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	book, err := r.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		switch {
		case book.OwnerID == claimantID:
			return nil, ErrSelfClaim
		case book.ClaimantID != nil:
			return nil, ErrAlreadyClaimed
		default:
			return nil, ErrBookNotFound
		}
	}

	return book, nil
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Genre, &b.Condition,
			&b.PickupLocation, &b.OwnerID, &b.ClaimantID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}
