package repository

import (
	"github.com/tugohq/tugo/internal/domain/coupon"
	"github.com/tugohq/tugo/internal/domain/customer"
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
	postgresRepo "github.com/tugohq/tugo/internal/repository/postgres"
)

func NewCustomerRepository(client postgres.IClient, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(client, logger)
}

func NewCouponRepository(client postgres.IClient, logger *logger.Logger) coupon.Repository {
	return postgresRepo.NewCouponRepository(client, logger)
}

func NewLedgerRepository(client postgres.IClient, logger *logger.Logger) ledger.Repository {
	return postgresRepo.NewLedgerRepository(client, logger)
}
