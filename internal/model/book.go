package model

import "time"

// Book represents a book listing in the database. ClaimantID stays NULL
// until another user expresses interest; after that it never changes.
type Book struct {
	ID             int64
	Title          string
	Author         string
	Genre          string
	Condition      string
	PickupLocation string
	OwnerID        int64
	ClaimantID     *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateBookRequest represents the body of an add-book request.
type CreateBookRequest struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Genre          string `json:"genre"`
	Condition      string `json:"condition"`
	PickupLocation string `json:"pickup_location"`
}

// UpdateBookRequest represents a partial update of a book's descriptive
// fields. Nil fields are left unchanged.
type UpdateBookRequest struct {
	Title          *string `json:"title"`
	Author         *string `json:"author"`
	Genre          *string `json:"genre"`
	Condition      *string `json:"condition"`
	PickupLocation *string `json:"pickup_location"`
}

// BookResponse represents a full book record in API responses.
type BookResponse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Genre          string `json:"genre"`
	Condition      string `json:"condition"`
	PickupLocation string `json:"pickup_location"`
	OwnerID        int64  `json:"owner_id"`
	ClaimantID     *int64 `json:"claimant_id"`
}

// BookSummary is the shape returned by listing and filter endpoints.
// It carries only descriptive fields, no ownership or claim data.
type BookSummary struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Genre          string `json:"genre"`
	Condition      string `json:"condition"`
	PickupLocation string `json:"pickup_location"`
}

// ToResponse converts a Book row to its API response shape.
func (b Book) ToResponse() BookResponse {
	return BookResponse{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Genre:          b.Genre,
		Condition:      b.Condition,
		PickupLocation: b.PickupLocation,
		OwnerID:        b.OwnerID,
		ClaimantID:     b.ClaimantID,
	}
}

// ToSummary converts a Book row to its listing shape.
func (b Book) ToSummary() BookSummary {
	return BookSummary{
		Title:          b.Title,
		Author:         b.Author,
		Genre:          b.Genre,
		Condition:      b.Condition,
		PickupLocation: b.PickupLocation,
	}
}
