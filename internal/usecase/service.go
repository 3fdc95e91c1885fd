package usecase

import (
	"moviematrix/internal/data/repository"
	"moviematrix/pkg/omdb"
	"moviematrix/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Review ReviewService
	Stats  StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, meta omdb.Lookuper, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, log),
		Movie:  NewMovieService(repo, meta, log),
		Review: NewReviewService(repo, log),
		Stats:  NewStatsService(repo, log),
	}
}
