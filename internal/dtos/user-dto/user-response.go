package user_dto

import (
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
)

type UserProfileResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	FullName  string          `json:"full_name"`
	Email     *string         `json:"email,omitempty"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at,omitzero"`
}

func FromEntity(u *entity.UserEntity) UserProfileResponse {
	return UserProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
