package request

type CreateReviewRequest struct {
	MovieID string  `json:"movie_id" validate:"required,uuid4"`
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Body    *string `json:"body,omitempty" validate:"omitempty,max=2000"`
	Rating  int     `json:"rating" validate:"required"`
}

type UpdateReviewRequest struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body   *string `json:"body,omitempty" validate:"omitempty,max=2000"`
	Rating *int    `json:"rating,omitempty"`
}
