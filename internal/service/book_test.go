package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmtree3/Book-Giveaway-API/internal/model"
	"github.com/dmtree3/Book-Giveaway-API/internal/repository"
)

func newBookServiceMock(t *testing.T) (*BookService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return NewBookService(repository.NewBookRepository(db)), mock
}

func mockBookRow(id, ownerID int64, claimantID *int64) *sqlmock.Rows {
	var claimant any
	if claimantID != nil {
		claimant = *claimantID
	}
	return sqlmock.NewRows([]string{
		"id", "title", "author", "genre", "book_condition", "pickup_location",
		"owner_id", "claimant_id", "created_at", "updated_at",
	}).AddRow(
		id, "Dune", "Frank Herbert", "sci-fi", "good", "Tbilisi",
		ownerID, claimant, time.Now(), time.Now(),
	)
}

func TestFilterValidation(t *testing.T) {
	svc := NewBookService(repository.NewBookRepository(nil))

	if _, err := svc.BooksByGenre(context.Background(), "sf"); err != ErrFilterTooShort {
		t.Errorf("BooksByGenre() error = %v, want ErrFilterTooShort", err)
	}
	if _, err := svc.BooksByAuthor(context.Background(), "ab"); err != ErrFilterTooShort {
		t.Errorf("BooksByAuthor() error = %v, want ErrFilterTooShort", err)
	}
	if _, err := svc.BooksByCondition(context.Background(), ""); err != ErrConditionRequired {
		t.Errorf("BooksByCondition() error = %v, want ErrConditionRequired", err)
	}
}

func TestListBooksExcludesClaimFields(t *testing.T) {
	svc, mock := newBookServiceMock(t)

	claimant := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM books ORDER BY id LIMIT ? OFFSET ?`)).
		WithArgs(50, 0).
		WillReturnRows(mockBookRow(5, 1, &claimant))

	books, err := svc.ListBooks(context.Background(), -1, 0)
	if err != nil {
		t.Fatalf("ListBooks() unexpected error: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("ListBooks() returned %d books, want 1", len(books))
	}
	// BookSummary carries descriptive fields only.
	if books[0].Title != "Dune" || books[0].Author != "Frank Herbert" {
		t.Errorf("ListBooks()[0] = %+v", books[0])
	}
}

func TestUpdateBookForbidden(t *testing.T) {
	svc, mock := newBookServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(mockBookRow(5, 1, nil))

	title := "Hijacked"
	_, err := svc.UpdateBook(context.Background(), 2, 5, model.UpdateBookRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("UpdateBook() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateBookPartialFieldsPreserved(t *testing.T) {
	svc, mock := newBookServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(mockBookRow(5, 1, nil))

	// Only condition is sent; every other column keeps its stored value.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE books SET title = ?, author = ?, genre = ?, book_condition = ?, pickup_location = ?`)).
		WithArgs("Dune", "Frank Herbert", "sci-fi", "worn", "Tbilisi", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	condition := "worn"
	resp, err := svc.UpdateBook(context.Background(), 1, 5, model.UpdateBookRequest{Condition: &condition})
	if err != nil {
		t.Fatalf("UpdateBook() unexpected error: %v", err)
	}
	if resp.Title != "Dune" || resp.Condition != "worn" {
		t.Errorf("UpdateBook() = %+v, want title preserved and condition updated", resp)
	}
}

func TestDeleteBookForbidden(t *testing.T) {
	svc, mock := newBookServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(mockBookRow(5, 1, nil))

	if _, err := svc.DeleteBook(context.Background(), 2, 5); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeleteBook() error = %v, want ErrForbidden", err)
	}
}

func TestDeleteBookReturnsRemaining(t *testing.T) {
	svc, mock := newBookServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(mockBookRow(5, 1, nil))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM books WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE owner_id = ?`)).
		WithArgs(int64(1)).
		WillReturnRows(mockBookRow(6, 1, nil))

	remaining, err := svc.DeleteBook(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("DeleteBook() unexpected error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != 6 {
		t.Errorf("DeleteBook() remaining = %+v, want one book with id 6", remaining)
	}
}

func TestExpressInterestOutcomes(t *testing.T) {
	claimUpdate := regexp.QuoteMeta(`UPDATE books SET claimant_id = ?`)
	bookSelect := regexp.QuoteMeta(`FROM books WHERE id = ?`)

	t.Run("success", func(t *testing.T) {
		svc, mock := newBookServiceMock(t)

		claimant := int64(3)
		mock.ExpectExec(claimUpdate).WithArgs(claimant, int64(5), claimant).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(bookSelect).WithArgs(int64(5)).
			WillReturnRows(mockBookRow(5, 1, &claimant))

		resp, err := svc.ExpressInterest(context.Background(), claimant, 5)
		if err != nil {
			t.Fatalf("ExpressInterest() unexpected error: %v", err)
		}
		if resp.ClaimantID == nil || *resp.ClaimantID != claimant {
			t.Errorf("ExpressInterest() ClaimantID = %v, want %d", resp.ClaimantID, claimant)
		}
	})

	t.Run("self claim", func(t *testing.T) {
		svc, mock := newBookServiceMock(t)

		mock.ExpectExec(claimUpdate).WithArgs(int64(1), int64(5), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(bookSelect).WithArgs(int64(5)).
			WillReturnRows(mockBookRow(5, 1, nil))

		if _, err := svc.ExpressInterest(context.Background(), 1, 5); !errors.Is(err, ErrSelfClaim) {
			t.Errorf("ExpressInterest() error = %v, want ErrSelfClaim", err)
		}
	})

	t.Run("already claimed keeps first claimant", func(t *testing.T) {
		svc, mock := newBookServiceMock(t)

		first := int64(3)
		mock.ExpectExec(claimUpdate).WithArgs(int64(4), int64(5), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(bookSelect).WithArgs(int64(5)).
			WillReturnRows(mockBookRow(5, 1, &first))

		if _, err := svc.ExpressInterest(context.Background(), 4, 5); !errors.Is(err, ErrAlreadyClaimed) {
			t.Errorf("ExpressInterest() error = %v, want ErrAlreadyClaimed", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, mock := newBookServiceMock(t)

		mock.ExpectExec(claimUpdate).WithArgs(int64(3), int64(99), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(bookSelect).WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "title", "author", "genre", "book_condition", "pickup_location",
				"owner_id", "claimant_id", "created_at", "updated_at",
			}))

		if _, err := svc.ExpressInterest(context.Background(), 3, 99); !errors.Is(err, ErrBookNotFound) {
			t.Errorf("ExpressInterest() error = %v, want ErrBookNotFound", err)
		}
	})
}
