package wire

import (
	"net/http"

	"moviematrix/internal/adaptor"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/usecase"
	"moviematrix/pkg/middleware"
	"moviematrix/pkg/omdb"
	"moviematrix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes
func Wiring(repo *repository.Repository, config *utils.Config, meta omdb.Lookuper, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, meta, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, handler.Movie, handler.Review, repo, logger)
	wireMovie(r, handler.Movie, handler.Review, repo, logger)
	wireReview(r, handler.Review, repo, logger)

	// Public catalog stats
	r.Get("/api/stats", handler.Stats.GetStats)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
