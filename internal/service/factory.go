package service

import (
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/cache"
	"github.com/tugohq/tugo/internal/config"
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	Auth   auth.Provider

	IdempotencyGenerator *idempotency.Generator

	// Repositories
	CustomerRepo customer.Repository
	CouponRepo   coupon.Repository
	LedgerRepo   ledger.Repository
}

// NewServiceParams assembles the common dependency bundle for fx
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cacheClient cache.Cache,
	authProvider auth.Provider,
	customerRepo customer.Repository,
	couponRepo coupon.Repository,
	ledgerRepo ledger.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:               logger,
		Config:               config,
		DB:                   db,
		Cache:                cacheClient,
		Auth:                 authProvider,
		IdempotencyGenerator: idempotency.NewGenerator(),
		CustomerRepo:         customerRepo,
		CouponRepo:           couponRepo,
		LedgerRepo:           ledgerRepo,
	}
}
