package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
)

// In-memory repositories. They mirror the Postgres implementations closely
// enough for the service tests, including the transactional cascades.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	sessions *fakeSessionRepo
	movies   *fakeMovieRepo
	reviews  *fakeReviewRepo
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[uuid.UUID]*entity.Movie

	reviews *fakeReviewRepo
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
}

func newFakeRepository() *repository.Repository {
	reviews := &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
	sessions := &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
	movies := &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie), reviews: reviews}
	users := &fakeUserRepo{
		users:    make(map[uuid.UUID]*entity.User),
		sessions: sessions,
		movies:   movies,
		reviews:  reviews,
	}

	return &repository.Repository{
		User:    users,
		Session: sessions,
		Movie:   movies,
		Review:  reviews,
	}
}

// ---------- users ----------

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	_, exists := r.users[id]
	delete(r.users, id)
	r.mu.Unlock()
	if !exists {
		return nil
	}

	r.sessions.mu.Lock()
	for sid, session := range r.sessions.sessions {
		if session.UserID == id {
			delete(r.sessions.sessions, sid)
		}
	}
	r.sessions.mu.Unlock()

	// Reviews authored by the user
	r.reviews.mu.Lock()
	for rid, review := range r.reviews.reviews {
		if review.UserID == id {
			delete(r.reviews.reviews, rid)
		}
	}
	r.reviews.mu.Unlock()

	// Owned movies and the reviews on them
	r.movies.mu.Lock()
	owned := make([]uuid.UUID, 0)
	for mid, movie := range r.movies.movies {
		if movie.OwnerID == id {
			owned = append(owned, mid)
			delete(r.movies.movies, mid)
		}
	}
	r.movies.mu.Unlock()

	r.reviews.mu.Lock()
	for rid, review := range r.reviews.reviews {
		for _, mid := range owned {
			if review.MovieID == mid {
				delete(r.reviews.reviews, rid)
			}
		}
	}
	r.reviews.mu.Unlock()

	return nil
}

// ---------- sessions ----------

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token.String() == token {
			now := session.ExpiresAt
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.UserID == userID {
			now := session.ExpiresAt
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) countForUser(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, session := range r.sessions {
		if session.UserID == userID {
			n++
		}
	}
	return n
}

// ---------- movies ----------

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movie, ok := r.movies[id]; ok {
		copied := *movie
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Movie, 0, len(r.movies))
	for _, movie := range r.movies {
		copied := *movie
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movies)), nil
}

func (r *fakeMovieRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := make([]*entity.Movie, 0)
	for _, movie := range r.movies {
		if movie.OwnerID == ownerID {
			copied := *movie
			owned = append(owned, &copied)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	return paginate(owned, limit, offset), nil
}

func (r *fakeMovieRepo) CountByOwnerID(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, movie := range r.movies {
		if movie.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovieRepo) FindByOwnerTitleYear(_ context.Context, ownerID uuid.UUID, title string, year *int) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, movie := range r.movies {
		if movie.OwnerID != ownerID || movie.Title != title {
			continue
		}
		if movie.Year == nil && year == nil {
			copied := *movie
			return &copied, nil
		}
		if movie.Year != nil && year != nil && *movie.Year == *year {
			copied := *movie
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) DeleteWithReviews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.movies, id)
	r.mu.Unlock()

	r.reviews.mu.Lock()
	for rid, review := range r.reviews.reviews {
		if review.MovieID == id {
			delete(r.reviews.reviews, rid)
		}
	}
	r.reviews.mu.Unlock()
	return nil
}

// ---------- reviews ----------

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review, ok := r.reviews[id]; ok {
		copied := *review
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByMovieID(_ context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*entity.Review, 0)
	for _, review := range r.reviews {
		if review.MovieID == movieID {
			copied := *review
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), nil
}

func (r *fakeReviewRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*entity.Review, 0)
	for _, review := range r.reviews {
		if review.UserID == userID {
			copied := *review
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), nil
}

func (r *fakeReviewRepo) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.UserID == userID && review.MovieID == movieID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) CountByMovieID(_ context.Context, movieID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, review := range r.reviews {
		if review.MovieID == movieID {
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, review := range r.reviews {
		if review.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.reviews)), nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetMovieReviewStats(_ context.Context, movieID uuid.UUID) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, n int64
	for _, review := range r.reviews {
		if review.MovieID == movieID {
			sum += int64(review.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
