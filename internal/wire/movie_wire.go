package wire

import (
	"moviematrix/internal/adaptor"
	"moviematrix/internal/data/repository"
	"moviematrix/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireMovie configures catalog routes
func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)
	r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/movies", movieHandler.CreateMovie)
	// Owner or admin, the service enforces ownership
	r.With(auth).Put("/api/movies/{id}", movieHandler.UpdateMovie)
	r.With(auth).Delete("/api/movies/{id}", movieHandler.DeleteMovie)
}
