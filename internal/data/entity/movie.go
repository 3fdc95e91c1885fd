package entity

import (
	"github.com/google/uuid"
)

// MinYear is the year of the first known film.
const MinYear = 1878

type Movie struct {
	Base
	OwnerID    uuid.UUID `db:"owner_id"`
	Title      string    `db:"title"`
	Director   *string   `db:"director"`
	Year       *int      `db:"year"`
	Genre      *string   `db:"genre"`
	PosterURL  *string   `db:"poster_url"`
	ImdbRating *float64  `db:"imdb_rating"`
	Planned    bool      `db:"is_planned"`
	Watched    bool      `db:"is_watched"`
	Favorite   bool      `db:"is_favorite"`
}
