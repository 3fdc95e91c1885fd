package response

import (
	"time"

	"moviematrix/internal/data/entity"
)

type MovieResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	Title         string    `json:"title"`
	Director      *string   `json:"director,omitempty"`
	Year          *int      `json:"year,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	ImdbRating    *float64  `json:"imdb_rating,omitempty"`
	Planned       bool      `json:"planned"`
	Watched       bool      `json:"watched"`
	Favorite      bool      `json:"favorite"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Helper converter
func MovieToResponse(movie *entity.Movie, ownerUsername string, avgRating float64, reviewCount int64) MovieResponse {
	return MovieResponse{
		ID:            movie.ID.String(),
		OwnerID:       movie.OwnerID.String(),
		OwnerUsername: ownerUsername,
		Title:         movie.Title,
		Director:      movie.Director,
		Year:          movie.Year,
		Genre:         movie.Genre,
		PosterURL:     movie.PosterURL,
		ImdbRating:    movie.ImdbRating,
		Planned:       movie.Planned,
		Watched:       movie.Watched,
		Favorite:      movie.Favorite,
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}
