package service

import (
	"context"
	"errors"
	"time"

	"github.com/dmtree3/Book-Giveaway-API/internal/crypto"
	"github.com/dmtree3/Book-Giveaway-API/internal/model"
	"github.com/dmtree3/Book-Giveaway-API/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration and authentication business logic.
type AuthService struct {
	users     *repository.UserRepository
	books     *repository.BookRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, books *repository.BookRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		books:     books,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account. Only a salted hash of the password
// is ever stored.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if req.Username == "" {
		return model.UserResponse{}, ErrUsernameRequired
	}
	if req.Email == "" {
		return model.UserResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, ErrDuplicateUser
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Authenticate verifies a username/password pair and returns a bearer
// token. An unknown username and a wrong password are indistinguishable to
// the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// ListUsers returns a page of registered users.
func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) ([]model.UserSummary, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserSummary, len(users))
	for i, u := range users {
		result[i] = model.UserSummary{Username: u.Username, Email: u.Email}
	}
	return result, nil
}

// GetUserByID returns a single user by id.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (model.UserSummary, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserSummary{}, ErrUserNotFound
		}
		return model.UserSummary{}, err
	}
	return model.UserSummary{Username: user.Username, Email: user.Email}, nil
}

// GetUserByUsername returns a single user by username.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (model.UserSummary, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserSummary{}, ErrUserNotFound
		}
		return model.UserSummary{}, err
	}
	return model.UserSummary{Username: user.Username, Email: user.Email}, nil
}

// UserBooks returns the books listed by the given user, or ErrUserNotFound
// when the user does not exist.
func (s *AuthService) UserBooks(ctx context.Context, userID int64) ([]model.BookResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	books, err := s.books.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.BookResponse, len(books))
	for i, b := range books {
		result[i] = b.ToResponse()
	}
	return result, nil
}
