package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/dmtree3/Book-Giveaway-API/internal/config"
	"github.com/dmtree3/Book-Giveaway-API/internal/handler"
	"github.com/dmtree3/Book-Giveaway-API/internal/middleware"
	"github.com/dmtree3/Book-Giveaway-API/internal/repository"
	"github.com/dmtree3/Book-Giveaway-API/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)

	authService := service.NewAuthService(userRepo, bookRepo, cfg.JWTSecret, cfg.JWTExpiry)
	bookService := service.NewBookService(bookRepo)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to our Book Giveaway API"}`))
	})

	// Credential endpoints are rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/token", authHandler.HandleToken)
		r.Post("/create_user", authHandler.HandleCreateUser)
	})

	// Public read endpoints.
	r.Get("/books/", bookHandler.HandleListBooks)
	r.Get("/books/by_genre", bookHandler.HandleBooksByGenre)
	r.Get("/books/by_author", bookHandler.HandleBooksByAuthor)
	r.Get("/books/by_condition", bookHandler.HandleBooksByCondition)
	r.Get("/books/{book_id}", bookHandler.HandleGetBook)
	r.Get("/users/", authHandler.HandleListUsers)
	r.Get("/users/id/{user_id}", authHandler.HandleGetUserByID)
	r.Get("/users/username/{username}", authHandler.HandleGetUserByUsername)
	r.Get("/users/{user_id}/books", authHandler.HandleUserBooks)

	// Mutating endpoints require a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Post("/add_book", bookHandler.HandleAddBook)
		r.Put("/update_book/{book_id}", bookHandler.HandleUpdateBook)
		r.Delete("/delete_book/{book_id}", bookHandler.HandleDeleteBook)
		r.Post("/express_interest/{book_id}", bookHandler.HandleExpressInterest)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
