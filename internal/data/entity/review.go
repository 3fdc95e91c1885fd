package entity

import (
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 10
)

type Review struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Title   string    `db:"title"`
	Body    *string   `db:"body"`
	Rating  int       `db:"rating"` // 1-10
}
