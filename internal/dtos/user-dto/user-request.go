package user_dto

type UserListFilter struct {
	Role string `query:"role" validate:"omitempty,userRole"`
}

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30,alphanum"`
	FullName string  `json:"full_name" validate:"required,min=3,max=120"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Role     string  `json:"role" validate:"required,userRole"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128,nefield=OldPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}
