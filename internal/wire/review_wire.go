package wire

import (
	"moviematrix/internal/adaptor"
	"moviematrix/internal/data/repository"
	"moviematrix/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview configures review routes
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/reviews/{id}", reviewHandler.GetReviewByID)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/reviews", reviewHandler.CreateReview)
	// Author or admin, the service enforces ownership
	r.With(auth).Put("/api/reviews/{id}", reviewHandler.UpdateReview)
	r.With(auth).Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
}
