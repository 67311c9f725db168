package testutil

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
)

// MockPostgresClient implements postgres.IClient for tests. WithTx runs the
// function directly; in-memory stores have no transactions to manage.
type MockPostgresClient struct {
	logger *logger.Logger
}

func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{logger: logger}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *MockPostgresClient) TxFromContext(ctx context.Context) *sqlx.Tx {
	return nil
}

func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}
