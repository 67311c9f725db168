package service

import (
	"context"
	"crypto/subtle"

	"github.com/tugohq/tugo/internal/api/dto"
	ierr "github.com/tugohq/tugo/internal/errors"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	configured := s.Config.Auth.OperatorPassword
	if configured == "" {
		return nil, ierr.NewError("login disabled").
			WithHint("Operator login is not configured").
			Mark(ierr.ErrPermissionDenied)
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(configured)) != 1 {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid password").
			Mark(ierr.ErrPermissionDenied)
	}

	token, expiry, err := s.Auth.GenerateToken(ctx, req.UserID, req.TenantID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("operator logged in",
		"tenant_id", req.TenantID,
		"user_id", req.UserID,
	)

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}
