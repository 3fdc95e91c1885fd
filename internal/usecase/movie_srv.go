package usecase

import (
	"context"
	"errors"
	"time"

	"moviematrix/internal/authz"
	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/request"
	"moviematrix/internal/dto/response"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/omdb"
	"moviematrix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, ownerID string, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetUserMovies(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	UpdateMovie(ctx context.Context, movieID string, actor authz.Actor, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string, actor authz.Actor) error
}

type movieService struct {
	repo *repository.Repository
	meta omdb.Lookuper
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, meta omdb.Lookuper, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		meta: meta,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (ms *movieService) CreateMovie(ctx context.Context, ownerID string, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ms.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Year != nil && (*req.Year < entity.MinYear || *req.Year > time.Now().Year()+1) {
		return nil, apperrors.Validation("year must be between %d and %d", entity.MinYear, time.Now().Year()+1)
	}

	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperrors.Validation("invalid user ID")
	}

	// 2. Owner must exist
	owner, err := ms.repo.User.FindByID(ctx, oid)
	if err != nil {
		ms.log.Error("Failed to find owner", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.NotFound("user not found")
	}

	// 3. Build movie from the request
	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:    oid,
		Title:      req.Title,
		Director:   req.Director,
		Year:       req.Year,
		Genre:      req.Genre,
		PosterURL:  req.PosterURL,
		ImdbRating: req.ImdbRating,
		Planned:    req.Planned,
		Watched:    req.Watched,
		Favorite:   req.Favorite,
	}

	// 4. Enrich from OMDb, manual fields win. A failed lookup never fails
	// the create.
	ms.enrichFromOMDb(ctx, movie)

	// 5. Duplicate check per owner
	existing, err := ms.repo.Movie.FindByOwnerTitleYear(ctx, oid, movie.Title, movie.Year)
	if err != nil {
		ms.log.Error("Failed to check duplicate movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("movie already in your catalog")
	}

	// 6. Save
	if err := ms.repo.Movie.Create(ctx, movie); err != nil {
		ms.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, err
	}

	ms.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("owner_id", ownerID),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie, owner.Username, 0, 0)
	return &resp, nil
}

func (ms *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	movies, err := ms.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		ms.log.Error("Failed to get movies", zap.Error(err))
		return nil, err
	}

	total, err := ms.repo.Movie.CountAll(ctx)
	if err != nil {
		ms.log.Error("Failed to count movies", zap.Error(err))
		return nil, err
	}

	movieResponses, err := ms.buildMovieResponses(ctx, movies)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (ms *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperrors.Validation("invalid movie ID")
	}

	movie, err := ms.repo.Movie.FindByID(ctx, id)
	if err != nil {
		ms.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, apperrors.NotFound("movie not found")
	}

	ownerUsername := ms.lookupOwnerUsername(ctx, movie.OwnerID)

	avg, count, err := ms.repo.Review.GetMovieReviewStats(ctx, id)
	if err != nil {
		ms.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	resp := response.MovieToResponse(movie, ownerUsername, avg, count)
	return &resp, nil
}

func (ms *movieService) GetUserMovies(ctx context.Context, ownerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperrors.Validation("invalid user ID")
	}

	owner, err := ms.repo.User.FindByID(ctx, oid)
	if err != nil {
		ms.log.Error("Failed to find owner", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.NotFound("user not found")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	movies, err := ms.repo.Movie.FindByOwnerID(ctx, oid, req.Limit(), req.Offset())
	if err != nil {
		ms.log.Error("Failed to get user movies", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, err
	}

	total, err := ms.repo.Movie.CountByOwnerID(ctx, oid)
	if err != nil {
		ms.log.Error("Failed to count user movies", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, err
	}

	movieResponses := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		avg, count, err := ms.repo.Review.GetMovieReviewStats(ctx, movie.ID)
		if err != nil {
			ms.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movie.ID.String()))
			return nil, err
		}
		movieResponses = append(movieResponses, response.MovieToResponse(movie, owner.Username, avg, count))
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (ms *movieService) UpdateMovie(ctx context.Context, movieID string, actor authz.Actor, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ms.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Year != nil && (*req.Year < entity.MinYear || *req.Year > time.Now().Year()+1) {
		return nil, apperrors.Validation("year must be between %d and %d", entity.MinYear, time.Now().Year()+1)
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperrors.Validation("invalid movie ID")
	}

	// 2. Find movie
	movie, err := ms.repo.Movie.FindByID(ctx, id)
	if err != nil {
		ms.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, apperrors.NotFound("movie not found")
	}

	// 3. Authorization: owner or admin
	if !authz.Can(actor, authz.ActionUpdate, authz.Resource{Type: authz.ResourceMovie, OwnerID: movie.OwnerID}) {
		ms.log.Warn("Update movie denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("movie_id", movieID))
		return nil, apperrors.Forbidden("not allowed to update this movie")
	}

	// 4. Apply fields
	titleChanged := req.Title != nil && *req.Title != movie.Title
	yearChanged := req.Year != nil && (movie.Year == nil || *req.Year != *movie.Year)
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Year != nil {
		movie.Year = req.Year
	}
	if req.Director != nil {
		movie.Director = req.Director
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.ImdbRating != nil {
		movie.ImdbRating = req.ImdbRating
	}
	if req.Planned != nil {
		movie.Planned = *req.Planned
	}
	if req.Watched != nil {
		movie.Watched = *req.Watched
	}
	if req.Favorite != nil {
		movie.Favorite = *req.Favorite
	}
	movie.UpdatedAt = time.Now()

	// 5. Duplicate recheck when the identity fields changed
	if titleChanged || yearChanged {
		existing, err := ms.repo.Movie.FindByOwnerTitleYear(ctx, movie.OwnerID, movie.Title, movie.Year)
		if err != nil {
			ms.log.Error("Failed to check duplicate movie", zap.Error(err), zap.String("title", movie.Title))
			return nil, err
		}
		if existing != nil && existing.ID != movie.ID {
			return nil, apperrors.Conflict("movie already in your catalog")
		}
	}

	// 6. Persist
	if err := ms.repo.Movie.Update(ctx, movie); err != nil {
		ms.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	ms.log.Info("Movie updated", zap.String("movie_id", movie.ID.String()))

	ownerUsername := ms.lookupOwnerUsername(ctx, movie.OwnerID)
	avg, count, err := ms.repo.Review.GetMovieReviewStats(ctx, id)
	if err != nil {
		ms.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	resp := response.MovieToResponse(movie, ownerUsername, avg, count)
	return &resp, nil
}

func (ms *movieService) DeleteMovie(ctx context.Context, movieID string, actor authz.Actor) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return apperrors.Validation("invalid movie ID")
	}

	// 1. Find movie
	movie, err := ms.repo.Movie.FindByID(ctx, id)
	if err != nil {
		ms.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return err
	}
	if movie == nil {
		return apperrors.NotFound("movie not found")
	}

	// 2. Authorization: owner or admin
	if !authz.Can(actor, authz.ActionDelete, authz.Resource{Type: authz.ResourceMovie, OwnerID: movie.OwnerID}) {
		ms.log.Warn("Delete movie denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("movie_id", movieID))
		return apperrors.Forbidden("not allowed to delete this movie")
	}

	// 3. Delete movie together with its reviews
	if err := ms.repo.Movie.DeleteWithReviews(ctx, id); err != nil {
		ms.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return err
	}

	ms.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

// ==================== HELPER METHODS ====================

// enrichFromOMDb fills empty metadata fields from the OMDb lookup. Fields
// already set on the movie are never overwritten.
func (ms *movieService) enrichFromOMDb(ctx context.Context, movie *entity.Movie) {
	if ms.meta == nil {
		return
	}

	result, err := ms.meta.Lookup(ctx, movie.Title, movie.Year)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			ms.log.Info("No OMDb match", zap.String("title", movie.Title))
		} else {
			ms.log.Warn("OMDb lookup failed", zap.Error(err), zap.String("title", movie.Title))
		}
		return
	}

	if movie.Director == nil {
		movie.Director = result.Director
	}
	if movie.Year == nil {
		movie.Year = result.Year
	}
	if movie.Genre == nil {
		movie.Genre = result.Genre
	}
	if movie.PosterURL == nil {
		movie.PosterURL = result.PosterURL
	}
	if movie.ImdbRating == nil {
		movie.ImdbRating = result.ImdbRating
	}
}

func (ms *movieService) lookupOwnerUsername(ctx context.Context, ownerID uuid.UUID) string {
	owner, err := ms.repo.User.FindByID(ctx, ownerID)
	if err != nil || owner == nil {
		return ""
	}
	return owner.Username
}

func (ms *movieService) buildMovieResponses(ctx context.Context, movies []*entity.Movie) ([]response.MovieResponse, error) {
	usernames := make(map[uuid.UUID]string)
	responses := make([]response.MovieResponse, 0, len(movies))

	for _, movie := range movies {
		username, ok := usernames[movie.OwnerID]
		if !ok {
			username = ms.lookupOwnerUsername(ctx, movie.OwnerID)
			usernames[movie.OwnerID] = username
		}

		avg, count, err := ms.repo.Review.GetMovieReviewStats(ctx, movie.ID)
		if err != nil {
			ms.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movie.ID.String()))
			return nil, err
		}

		responses = append(responses, response.MovieToResponse(movie, username, avg, count))
	}

	return responses, nil
}
