package service

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/auth"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/testutil"
	"github.com/tugohq/tugo/internal/types"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AuthService
	provider auth.Provider
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.provider = auth.NewProvider(s.GetConfig())
	s.service = NewAuthService(ServiceParams{
		Logger:               s.GetLogger(),
		Config:               s.GetConfig(),
		DB:                   s.GetDB(),
		Cache:                s.GetCache(),
		Auth:                 s.provider,
		IdempotencyGenerator: idempotency.NewGenerator(),
		CustomerRepo:         s.GetStores().CustomerRepo,
		CouponRepo:           s.GetStores().CouponRepo,
		LedgerRepo:           s.GetStores().LedgerRepo,
	})
}

func (s *AuthServiceSuite) TestLogin() {
	resp, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		TenantID: types.DefaultTenantID,
		UserID:   types.DefaultUserID,
		Password: s.GetConfig().Auth.OperatorPassword,
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("Bearer", resp.TokenType)
	s.Positive(resp.ExpiresIn)

	// The issued token round-trips through the provider.
	claims, err := s.provider.ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(types.DefaultTenantID, claims.TenantID)
	s.Equal(types.DefaultUserID, claims.UserID)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		TenantID: types.DefaultTenantID,
		UserID:   types.DefaultUserID,
		Password: "wrong",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginDisabled() {
	configured := s.GetConfig().Auth.OperatorPassword
	s.GetConfig().Auth.OperatorPassword = ""
	defer func() { s.GetConfig().Auth.OperatorPassword = configured }()

	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		TenantID: types.DefaultTenantID,
		UserID:   types.DefaultUserID,
		Password: "anything",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginMissingFields() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Password: s.GetConfig().Auth.OperatorPassword,
	})
	s.Error(err)
}
