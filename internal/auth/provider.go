package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tugohq/tugo/internal/config"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/types"
)

// Claims carries the identity extracted from a validated session token.
type Claims struct {
	UserID   string
	TenantID string
}

// Provider issues and validates operator session tokens.
type Provider interface {
	GenerateToken(ctx context.Context, userID, tenantID string) (string, time.Duration, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type jwtProvider struct {
	cfg *config.Configuration
}

func NewProvider(cfg *config.Configuration) Provider {
	return &jwtProvider{cfg: cfg}
}

const defaultTokenExpiry = 30 * 24 * time.Hour

func (p *jwtProvider) GenerateToken(_ context.Context, userID, tenantID string) (string, time.Duration, error) {
	expiry := p.cfg.Auth.TokenExpiry
	if expiry <= 0 {
		expiry = defaultTokenExpiry
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"exp":       now.Add(expiry).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.cfg.Auth.Secret))
	if err != nil {
		return "", 0, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrInternal)
	}

	return signed, expiry, nil
}

func (p *jwtProvider) ValidateToken(_ context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("Unexpected signing method: %v", token.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(p.cfg.Auth.Secret), nil
	})

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	tenantID, tenantOk := claims["tenant_id"].(string)
	if !tenantOk {
		tenantID = types.DefaultTenantID
	}

	return &Claims{UserID: userID, TenantID: tenantID}, nil
}
