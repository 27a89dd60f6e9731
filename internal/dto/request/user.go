package request

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Role     *int   `json:"role,omitempty" validate:"omitempty,min=0,max=2"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1"`
	Role     *int    `json:"role,omitempty" validate:"omitempty,min=0,max=2"`
}
