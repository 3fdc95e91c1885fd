package usecase

import (
	"context"
	"time"

	"moviematrix/internal/authz"
	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/request"
	"moviematrix/internal/dto/response"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetUserReviews(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, actor authz.Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, actor authz.Actor) error
	GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (rs *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Rating < entity.MinRating || req.Rating > entity.MaxRating {
		return nil, apperrors.Validation("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.Validation("invalid user ID")
	}
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, apperrors.Validation("invalid movie ID")
	}

	// 2. Reviewer must exist
	user, err := rs.repo.User.FindByID(ctx, uid)
	if err != nil {
		rs.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	// 3. Movie must exist
	movie, err := rs.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		rs.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, err
	}
	if movie == nil {
		return nil, apperrors.NotFound("movie not found")
	}

	// 4. One review per user per movie
	existing, err := rs.repo.Review.FindByUserAndMovie(ctx, uid, movieID)
	if err != nil {
		rs.log.Error("Failed to check existing review", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("you have already reviewed this movie")
	}

	// 5. Create review
	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  uid,
		MovieID: movieID,
		Title:   req.Title,
		Body:    req.Body,
		Rating:  req.Rating,
	}

	if err := rs.repo.Review.Create(ctx, review); err != nil {
		rs.log.Error("Failed to create review", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, err
	}

	rs.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.String("movie_id", req.MovieID))

	resp := response.ReviewToResponse(review, user.Username, movie.Title)
	return &resp, nil
}

func (rs *reviewService) GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperrors.Validation("invalid movie ID")
	}

	movie, err := rs.repo.Movie.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, apperrors.NotFound("movie not found")
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

	reviews, err := rs.repo.Review.FindByMovieID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		rs.log.Error("Failed to get movie reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	total, err := rs.repo.Review.CountByMovieID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to count movie reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	reviewResponses := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, response.ReviewToResponse(review, rs.lookupUsername(ctx, review.UserID), movie.Title))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (rs *reviewService) GetUserReviews(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.Validation("invalid user ID")
	}

	user, err := rs.repo.User.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	if user == nil {
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

	reviews, err := rs.repo.Review.FindByUserID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		rs.log.Error("Failed to get user reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	total, err := rs.repo.Review.CountByUserID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to count user reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	reviewResponses := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, response.ReviewToResponse(review, user.Username, rs.lookupMovieTitle(ctx, review.MovieID)))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (rs *reviewService) GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperrors.Validation("invalid review ID")
	}

	review, err := rs.repo.Review.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFound("review not found")
	}

	resp := response.ReviewToResponse(review, rs.lookupUsername(ctx, review.UserID), rs.lookupMovieTitle(ctx, review.MovieID))
	return &resp, nil
}

func (rs *reviewService) UpdateReview(ctx context.Context, reviewID string, actor authz.Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Rating != nil && (*req.Rating < entity.MinRating || *req.Rating > entity.MaxRating) {
		return nil, apperrors.Validation("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperrors.Validation("invalid review ID")
	}

	// 2. Find review
	review, err := rs.repo.Review.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFound("review not found")
	}

	// 3. Authorization: author or admin
	if !authz.Can(actor, authz.ActionUpdate, authz.Resource{Type: authz.ResourceReview, OwnerID: review.UserID}) {
		rs.log.Warn("Update review denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("review_id", reviewID))
		return nil, apperrors.Forbidden("not allowed to update this review")
	}

	// 4. Apply fields
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Body != nil {
		review.Body = req.Body
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	review.UpdatedAt = time.Now()

	// 5. Persist
	if err := rs.repo.Review.Update(ctx, review); err != nil {
		rs.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, err
	}

	rs.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	resp := response.ReviewToResponse(review, rs.lookupUsername(ctx, review.UserID), rs.lookupMovieTitle(ctx, review.MovieID))
	return &resp, nil
}

func (rs *reviewService) DeleteReview(ctx context.Context, reviewID string, actor authz.Actor) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return apperrors.Validation("invalid review ID")
	}

	// 1. Find review
	review, err := rs.repo.Review.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return err
	}
	if review == nil {
		return apperrors.NotFound("review not found")
	}

	// 2. Authorization: author or admin
	if !authz.Can(actor, authz.ActionDelete, authz.Resource{Type: authz.ResourceReview, OwnerID: review.UserID}) {
		rs.log.Warn("Delete review denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("review_id", reviewID))
		return apperrors.Forbidden("not allowed to delete this review")
	}

	// 3. Delete
	if err := rs.repo.Review.Delete(ctx, id); err != nil {
		rs.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return err
	}

	rs.log.Info("Review deleted", zap.String("review_id", reviewID))
	return nil
}

func (rs *reviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.MovieReviewStats, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, apperrors.Validation("invalid movie ID")
	}

	movie, err := rs.repo.Movie.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, apperrors.NotFound("movie not found")
	}

	avg, count, err := rs.repo.Review.GetMovieReviewStats(ctx, id)
	if err != nil {
		rs.log.Error("Failed to get review stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	return &response.MovieReviewStats{
		MovieID:       movie.ID.String(),
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// ==================== HELPER METHODS ====================

func (rs *reviewService) lookupUsername(ctx context.Context, userID uuid.UUID) string {
	user, err := rs.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}

func (rs *reviewService) lookupMovieTitle(ctx context.Context, movieID uuid.UUID) string {
	movie, err := rs.repo.Movie.FindByID(ctx, movieID)
	if err != nil || movie == nil {
		return ""
	}
	return movie.Title
}
