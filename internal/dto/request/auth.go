package request

type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"first_name" validate:"required,min=2,max=40"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=40"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,min=1,max=150"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
