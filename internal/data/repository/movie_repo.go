package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"moviematrix/internal/data/entity"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/database"
)

const movieColumns = `id, owner_id, title, director, year, genre, poster_url,
	       imdb_rating, is_planned, is_watched, is_favorite, created_at, updated_at`

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Movie, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	FindByOwnerTitleYear(ctx context.Context, ownerID uuid.UUID, title string, year *int) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error

	// DeleteWithReviews removes the movie and all reviews referencing it in
	// one transaction.
	DeleteWithReviews(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.OwnerID,
		&movie.Title,
		&movie.Director,
		&movie.Year,
		&movie.Genre,
		&movie.PosterURL,
		&movie.ImdbRating,
		&movie.Planned,
		&movie.Watched,
		&movie.Favorite,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, owner_id, title, director, year, genre, poster_url,
		                    imdb_rating, is_planned, is_watched, is_favorite,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.OwnerID,
		movie.Title,
		movie.Director,
		movie.Year,
		movie.Genre,
		movie.PosterURL,
		movie.ImdbRating,
		movie.Planned,
		movie.Watched,
		movie.Favorite,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("owner_id", movie.OwnerID.String()),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q for owner %s: %w",
			movie.Title, movie.OwnerID.String(), err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, movieColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all movies limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count all movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, movieColumns)

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find movies by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

func (r *movieRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE owner_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		r.log.Error("Failed to count movies by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, fmt.Errorf("count movies by owner %s: %w", ownerID.String(), err)
	}

	return count, nil
}

func (r *movieRepository) FindByOwnerTitleYear(ctx context.Context, ownerID uuid.UUID, title string, year *int) (*entity.Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies
		WHERE owner_id = $1 AND title = $2 AND year IS NOT DISTINCT FROM $3
		LIMIT 1
	`, movieColumns)

	movie, err := scanMovie(r.db.QueryRow(ctx, query, ownerID, title, year))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by owner and title",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie %q for owner %s: %w", title, ownerID.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, director = $3, year = $4, genre = $5, poster_url = $6,
		    imdb_rating = $7, is_planned = $8, is_watched = $9, is_favorite = $10,
		    updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Director,
		movie.Year,
		movie.Genre,
		movie.PosterURL,
		movie.ImdbRating,
		movie.Planned,
		movie.Watched,
		movie.Favorite,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("movie %s not found", movie.ID.String())
	}

	return nil
}

func (r *movieRepository) DeleteWithReviews(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin movie delete transaction",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("begin delete movie %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE movie_id = $1`, id); err != nil {
		r.log.Error("Failed to delete reviews for movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete reviews for movie %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound("movie %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete movie %s: %w", id.String(), err)
	}

	r.log.Info("Movie deleted with reviews", zap.String("movie_id", id.String()))
	return nil
}

func collectMovies(rows pgx.Rows) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}
