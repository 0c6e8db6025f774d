package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Token is an immutable registry entry for a tradable asset.
// AssetID is a 32-byte hex identifier and is compared case-insensitively
// everywhere; Symbol is the human-facing ticker.
type Token struct {
	Name      string
	Symbol    string
	Decimals  int
	AssetID   string
	Logo      string
	PriceFeed string
}

// NormalizedAssetID returns the lowercase form used as a lookup key.
func (t Token) NormalizedAssetID() string {
	return strings.ToLower(t.AssetID)
}

// FormatUnits converts an on-chain integer amount to a human amount.
func (t Token) FormatUnits(v decimal.Decimal) decimal.Decimal {
	return v.Shift(int32(-t.Decimals))
}

// ParseUnits converts a human amount to the on-chain integer amount.
func (t Token) ParseUnits(v decimal.Decimal) decimal.Decimal {
	return v.Shift(int32(t.Decimals))
}
