package request

type CreateMovieRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Year       *int     `json:"year,omitempty"`
	Director   *string  `json:"director,omitempty" validate:"omitempty,max=200"`
	Genre      *string  `json:"genre,omitempty" validate:"omitempty,max=200"`
	PosterURL  *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	ImdbRating *float64 `json:"imdb_rating,omitempty" validate:"omitempty,min=0,max=10"`
	Planned    bool     `json:"planned"`
	Watched    bool     `json:"watched"`
	Favorite   bool     `json:"favorite"`
}

type UpdateMovieRequest struct {
	Title      *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Year       *int     `json:"year,omitempty"`
	Director   *string  `json:"director,omitempty" validate:"omitempty,max=200"`
	Genre      *string  `json:"genre,omitempty" validate:"omitempty,max=200"`
	PosterURL  *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	ImdbRating *float64 `json:"imdb_rating,omitempty" validate:"omitempty,min=0,max=10"`
	Planned    *bool    `json:"planned,omitempty"`
	Watched    *bool    `json:"watched,omitempty"`
	Favorite   *bool    `json:"favorite,omitempty"`
}
