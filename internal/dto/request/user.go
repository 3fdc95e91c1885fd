package request

type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=40"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=40"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,min=1,max=150"`
}

type ChangePasswordRequest struct {
	// CurrentPassword is required when a user changes their own password;
	// an admin resetting another account leaves it empty.
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
