package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketCreateEvent is emitted by the indexer when a spot market is created.
type MarketCreateEvent struct {
	ID        string
	AssetID   string
	CreatedAt time.Time
}

// SpotMarketVolume is the 24h volume summary for the spot book.
type SpotMarketVolume struct {
	Volume decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
}

// PerpMarket describes one perpetual market and its risk parameters.
type PerpMarket struct {
	BaseTokenAssetID  string
	QuoteTokenAssetID string
	IMRatio           decimal.Decimal
	MMRatio           decimal.Decimal
	Status            string
	PausedIndexPrice  decimal.Decimal
	PausedTimestamp   int64
	ClosedPrice       decimal.Decimal
}

// PerpMaxAbsPositionSize bounds the position a trader may open on each side.
type PerpMaxAbsPositionSize struct {
	Short decimal.Decimal
	Long  decimal.Decimal
}

// PerpPendingFundingPayment is the funding owed by a trader on one market.
type PerpPendingFundingPayment struct {
	FundingPayment decimal.Decimal
	FundingRate    decimal.Decimal
}
