package domain

import (
	"github.com/shopspring/decimal"
)

// PerpPosition is an open perpetual position. Size carries the sign:
// positive long, negative short.
type PerpPosition struct {
	Trader       string
	BaseAssetID  string
	Size         decimal.Decimal
	OpenNotional decimal.Decimal
}

// IsLong reports whether the position is on the long side.
func (p PerpPosition) IsLong() bool {
	return p.Size.IsPositive()
}
