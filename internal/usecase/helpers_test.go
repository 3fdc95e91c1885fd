package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"moviematrix/internal/authz"
	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
)

func seedUser(t *testing.T, repo *repository.Repository, username string, role entity.UserRole) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		PasswordHash: "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfake",
		Role:         role,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}

func seedMovie(t *testing.T, repo *repository.Repository, ownerID uuid.UUID, title string, year *int) *entity.Movie {
	t.Helper()
	now := time.Now()
	movie := &entity.Movie{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		OwnerID: ownerID,
		Title:   title,
		Year:    year,
	}
	require.NoError(t, repo.Movie.Create(context.Background(), movie))
	return movie
}

func seedReview(t *testing.T, repo *repository.Repository, userID, movieID uuid.UUID, rating int) *entity.Review {
	t.Helper()
	now := time.Now()
	review := &entity.Review{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:  userID,
		MovieID: movieID,
		Title:   "A review",
		Rating:  rating,
	}
	require.NoError(t, repo.Review.Create(context.Background(), review))
	return review
}

func actorFor(user *entity.User) authz.Actor {
	return authz.Actor{ID: user.ID, Role: user.Role}
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
