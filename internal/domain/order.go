package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType distinguishes order sides on the spot book.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// SpotMarketOrder is an order record as reported by the indexer.
type SpotMarketOrder struct {
	ID           string
	Trader       string
	BaseAssetID  string
	QuoteAssetID string
	Type         OrderType
	Size         decimal.Decimal
	Price        decimal.Decimal
	Timestamp    time.Time
}

// PerpOrder is an open perpetual order for one trader/market pair.
type PerpOrder struct {
	ID          string
	Trader      string
	BaseAssetID string
	Size        decimal.Decimal
	Price       decimal.Decimal
	Timestamp   time.Time
}

// FetchOrdersParams controls spot order queries.
type FetchOrdersParams struct {
	BaseToken string
	Type      OrderType
	Trader    string
	Limit     int
	IsOpened  *bool
}

// FetchTradesParams controls spot trade queries.
type FetchTradesParams struct {
	BaseToken string
	Trader    string
	Limit     int
}
