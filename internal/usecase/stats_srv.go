package usecase

import (
	"context"

	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	GetStats(ctx context.Context) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (ss *statsService) GetStats(ctx context.Context) (*response.StatsResponse, error) {
	users, err := ss.repo.User.CountAll(ctx)
	if err != nil {
		ss.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	movies, err := ss.repo.Movie.CountAll(ctx)
	if err != nil {
		ss.log.Error("Failed to count movies", zap.Error(err))
		return nil, err
	}

	reviews, err := ss.repo.Review.CountAll(ctx)
	if err != nil {
		ss.log.Error("Failed to count reviews", zap.Error(err))
		return nil, err
	}

	return &response.StatsResponse{
		Users:   users,
		Movies:  movies,
		Reviews: reviews,
	}, nil
}
