package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpotMarketTrade is an executed match reported by the indexer.
// Orders may rest unfilled; a trade is always an execution.
type SpotMarketTrade struct {
	ID          string
	BaseAssetID string
	Buyer       string
	Seller      string
	Size        decimal.Decimal
	Price       decimal.Decimal
	Timestamp   time.Time
}
