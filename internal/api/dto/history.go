package dto

import (
	"github.com/tugohq/tugo/internal/domain/ledger"
	"github.com/tugohq/tugo/internal/types"
)

type HistoryEntryResponse struct {
	*ledger.Entry
}

// ListHistoryResponse represents the response for listing point history
type ListHistoryResponse = types.ListResponse[*HistoryEntryResponse]

type BalanceResponse struct {
	CustomerID string `json:"customer_id"`
	Balance    int64  `json:"balance"`
}
