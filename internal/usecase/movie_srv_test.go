package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moviematrix/internal/data/entity"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/request"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/omdb"
)

// fakeLookuper stands in for the OMDb client.
type fakeLookuper struct {
	result *omdb.Result
	err    error
	calls  int
}

func (f *fakeLookuper) Lookup(_ context.Context, _ string, _ *int) (*omdb.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newMovieService(t *testing.T, meta omdb.Lookuper) (MovieService, *repository.Repository) {
	t.Helper()
	repo := newFakeRepository()
	return NewMovieService(repo, meta, zap.NewNop()), repo
}

func TestCreateMovie_EnrichedFromLookup(t *testing.T) {
	meta := &fakeLookuper{result: &omdb.Result{
		Title:      "Inception",
		Director:   strPtr("Christopher Nolan"),
		Year:       intPtr(2010),
		Genre:      strPtr("Action, Sci-Fi"),
		PosterURL:  strPtr("https://example.com/inception.jpg"),
		ImdbRating: floatPtr(8.8),
	}}
	svc, repo := newMovieService(t, meta)
	alice := seedUser(t, repo, "alice", entity.RoleMember)

	movie, err := svc.CreateMovie(context.Background(), alice.ID.String(), &request.CreateMovieRequest{
		Title: "Inception",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.calls)

	assert.Equal(t, "Inception", movie.Title)
	require.NotNil(t, movie.Director)
	assert.Equal(t, "Christopher Nolan", *movie.Director)
	require.NotNil(t, movie.Year)
	assert.Equal(t, 2010, *movie.Year)
	require.NotNil(t, movie.ImdbRating)
	assert.InDelta(t, 8.8, *movie.ImdbRating, 0.001)
	assert.Equal(t, "alice", movie.OwnerUsername)
}

func TestCreateMovie_ManualFieldsWin(t *testing.T) {
	meta := &fakeLookuper{result: &omdb.Result{
		Title:    "Inception",
		Director: strPtr("Wrong Person"),
		Year:     intPtr(2009),
	}}
	svc, repo := newMovieService(t, meta)
	alice := seedUser(t, repo, "alice", entity.RoleMember)

	movie, err := svc.CreateMovie(context.Background(), alice.ID.String(), &request.CreateMovieRequest{
		Title:    "Inception",
		Director: strPtr("Christopher Nolan"),
		Year:     intPtr(2010),
	})
	require.NoError(t, err)

	assert.Equal(t, "Christopher Nolan", *movie.Director)
	assert.Equal(t, 2010, *movie.Year)
}

func TestCreateMovie_LookupMissDegradesToManual(t *testing.T) {
	meta := &fakeLookuper{err: omdb.ErrNotFound}
	svc, repo := newMovieService(t, meta)
	alice := seedUser(t, repo, "alice", entity.RoleMember)

	movie, err := svc.CreateMovie(context.Background(), alice.ID.String(), &request.CreateMovieRequest{
		Title: "Home Video 2019",
	})
	require.NoError(t, err)

	assert.Equal(t, "Home Video 2019", movie.Title)
	assert.Nil(t, movie.Director)
	assert.Nil(t, movie.Year)
}

func TestCreateMovie_LookupOutageDegradesToManual(t *testing.T) {
	meta := &fakeLookuper{err: errors.New("omdb: unreachable after 3 attempts")}
	svc, repo := newMovieService(t, meta)
	alice := seedUser(t, repo, "alice", entity.RoleMember)

	movie, err := svc.CreateMovie(context.Background(), alice.ID.String(), &request.CreateMovieRequest{
		Title: "Inception",
		Year:  intPtr(2010),
	})
	require.NoError(t, err, "a metadata outage must never fail the create")
	assert.Equal(t, "Inception", movie.Title)
}

func TestCreateMovie_DuplicatePerOwner(t *testing.T) {
	meta := &fakeLookuper{err: omdb.ErrNotFound}
	svc, repo := newMovieService(t, meta)
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	bob := seedUser(t, repo, "bob", entity.RoleMember)

	req := &request.CreateMovieRequest{Title: "Inception", Year: intPtr(2010)}

	_, err := svc.CreateMovie(context.Background(), alice.ID.String(), req)
	require.NoError(t, err)

	_, err = svc.CreateMovie(context.Background(), alice.ID.String(), req)
	assert.True(t, apperrors.IsConflict(err), "got: %v", err)

	// A different owner may add the same title
	_, err = svc.CreateMovie(context.Background(), bob.ID.String(), req)
	assert.NoError(t, err)
}

func TestCreateMovie_UnknownOwner(t *testing.T) {
	svc, _ := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})

	_, err := svc.CreateMovie(context.Background(), "7f8b4b60-0000-4000-8000-000000000000", &request.CreateMovieRequest{
		Title: "Inception",
	})
	assert.True(t, apperrors.IsNotFound(err), "got: %v", err)
}

func TestCreateMovie_YearTooEarly(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)

	_, err := svc.CreateMovie(context.Background(), alice.ID.String(), &request.CreateMovieRequest{
		Title: "Prehistoric",
		Year:  intPtr(1800),
	})
	assert.True(t, apperrors.IsValidation(err), "got: %v", err)
}

func TestGetMovieByID_WithReviewStats(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	bob := seedUser(t, repo, "bob", entity.RoleMember)
	movie := seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))
	seedReview(t, repo, alice.ID, movie.ID, 10)
	seedReview(t, repo, bob.ID, movie.ID, 7)

	got, err := svc.GetMovieByID(context.Background(), movie.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.ReviewCount)
	assert.InDelta(t, 8.5, got.AverageRating, 0.001)
	assert.Equal(t, "alice", got.OwnerUsername)
}

func TestGetMovieByID_NotFound(t *testing.T) {
	svc, _ := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})

	_, err := svc.GetMovieByID(context.Background(), "7f8b4b60-0000-4000-8000-000000000000")
	assert.True(t, apperrors.IsNotFound(err), "got: %v", err)
}

func TestGetUserMovies(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	bob := seedUser(t, repo, "bob", entity.RoleMember)
	seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))
	seedMovie(t, repo, alice.ID, "Memento", intPtr(2000))
	seedMovie(t, repo, bob.ID, "Heat", intPtr(1995))

	page, err := svc.GetUserMovies(context.Background(), alice.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestUpdateMovie_OwnerOnly(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	bob := seedUser(t, repo, "bob", entity.RoleMember)
	movie := seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))

	_, err := svc.UpdateMovie(context.Background(), movie.ID.String(), actorFor(bob), &request.UpdateMovieRequest{
		Title: strPtr("Stolen"),
	})
	assert.True(t, apperrors.IsForbidden(err), "got: %v", err)

	unchanged, findErr := repo.Movie.FindByID(context.Background(), movie.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "Inception", unchanged.Title)

	updated, err := svc.UpdateMovie(context.Background(), movie.ID.String(), actorFor(alice), &request.UpdateMovieRequest{
		Watched:  boolPtr(true),
		Favorite: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Watched)
	assert.True(t, updated.Favorite)
}

func TestDeleteMovie_RemovesItsReviews(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	ctx := context.Background()

	alice := seedUser(t, repo, "alice", entity.RoleMember)
	bob := seedUser(t, repo, "bob", entity.RoleMember)
	movie := seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))
	other := seedMovie(t, repo, alice.ID, "Memento", intPtr(2000))
	seedReview(t, repo, bob.ID, movie.ID, 8)
	seedReview(t, repo, bob.ID, other.ID, 6)

	require.NoError(t, svc.DeleteMovie(ctx, movie.ID.String(), actorFor(alice)))

	count, err := repo.Review.CountByMovieID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The review on the surviving movie stays
	count, err = repo.Review.CountByMovieID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteMovie_SecondDeleteNotFound(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	movie := seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))

	require.NoError(t, svc.DeleteMovie(context.Background(), movie.ID.String(), actorFor(alice)))

	err := svc.DeleteMovie(context.Background(), movie.ID.String(), actorFor(alice))
	assert.True(t, apperrors.IsNotFound(err), "got: %v", err)
}

func TestDeleteMovie_AdminOverride(t *testing.T) {
	svc, repo := newMovieService(t, &fakeLookuper{err: omdb.ErrNotFound})
	alice := seedUser(t, repo, "alice", entity.RoleMember)
	admin := seedUser(t, repo, "admin", entity.RoleAdmin)
	movie := seedMovie(t, repo, alice.ID, "Inception", intPtr(2010))

	assert.NoError(t, svc.DeleteMovie(context.Background(), movie.ID.String(), actorFor(admin)))
}
