package dto

import "github.com/heritage-catalog/internal/domain"

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64,alphanum"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin  bool    `json:"is_admin"`
}

// UpdateUserRequest - меняются только email и is_admin
type UpdateUserRequest struct {
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin *bool   `json:"is_admin,omitempty"`
}

func (r UpdateUserRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Email:   r.Email,
		IsAdmin: r.IsAdmin,
	}
}
