package dto

import (
	"github.com/tugohq/tugo/internal/validator"
)

type LoginRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}
