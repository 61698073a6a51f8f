package users

import (
	"time"

	"github.com/listplus/listplus-backend/pkg/db/models"
)

// UserDTO is the API shape of a user record.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreUserInput carries the identity-provider record pushed after signup.
type StoreUserInput struct {
	UID   string  `json:"uid" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateProfileInput is a partial profile update; nil fields are untouched.
type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// BatchGetInput lists the user ids to resolve.
type BatchGetInput struct {
	UserIDs []string `json:"userIds" validate:"required,min=1"`
}

func toUserDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
