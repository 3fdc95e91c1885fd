package wire

import (
	"moviematrix/internal/adaptor"
	"moviematrix/internal/data/repository"
	"moviematrix/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	movieHandler *adaptor.MovieHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// ==================== PUBLIC ROUTES ====================
	// Public profile and the user's catalog
	r.Get("/api/users/{id}", userHandler.GetUserByID)
	r.Get("/api/users/{id}/movies", movieHandler.GetUserMovies)
	r.Get("/api/users/{id}/reviews", reviewHandler.GetUserReviews)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/users/me", userHandler.GetMe)
	// Self or admin, the service enforces ownership
	r.With(auth).Put("/api/users/{id}", userHandler.UpdateUser)
	r.With(auth).Put("/api/users/{id}/password", userHandler.ChangePassword)
	r.With(auth).Delete("/api/users/{id}", userHandler.DeleteUser)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, middleware.Admin(log)).Get("/api/users", userHandler.GetAllUsers)
}
