package sdk

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
)

// Wire shapes returned by the indexer. Numeric fields arrive as strings and
// are parsed into decimals exactly; float64 never appears on this path.

type marketCreateEventJSON struct {
	ID        string `json:"id"`
	AssetID   string `json:"asset_id"`
	CreatedAt int64  `json:"created_at"`
}

func (m marketCreateEventJSON) toDomain() domain.MarketCreateEvent {
	return domain.MarketCreateEvent{
		ID:        m.ID,
		AssetID:   m.AssetID,
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
	}
}

type spotOrderJSON struct {
	ID           string `json:"id"`
	Trader       string `json:"trader"`
	BaseAssetID  string `json:"base_token"`
	QuoteAssetID string `json:"quote_token"`
	Type         string `json:"order_type"`
	Size         string `json:"size"`
	Price        string `json:"price"`
	Timestamp    int64  `json:"timestamp"`
}

func (o spotOrderJSON) toDomain() (domain.SpotMarketOrder, error) {
	size, err := decimal.NewFromString(o.Size)
	if err != nil {
		return domain.SpotMarketOrder{}, errors.Wrapf(err, "order %s: parse size", o.ID)
	}
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return domain.SpotMarketOrder{}, errors.Wrapf(err, "order %s: parse price", o.ID)
	}
	return domain.SpotMarketOrder{
		ID:           o.ID,
		Trader:       o.Trader,
		BaseAssetID:  o.BaseAssetID,
		QuoteAssetID: o.QuoteAssetID,
		Type:         domain.OrderType(o.Type),
		Size:         size,
		Price:        price,
		Timestamp:    time.Unix(o.Timestamp, 0).UTC(),
	}, nil
}

type spotTradeJSON struct {
	ID          string `json:"id"`
	BaseAssetID string `json:"base_token"`
	Buyer       string `json:"buyer"`
	Seller      string `json:"seller"`
	Size        string `json:"size"`
	Price       string `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

func (t spotTradeJSON) toDomain() (domain.SpotMarketTrade, error) {
	size, err := decimal.NewFromString(t.Size)
	if err != nil {
		return domain.SpotMarketTrade{}, errors.Wrapf(err, "trade %s: parse size", t.ID)
	}
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return domain.SpotMarketTrade{}, errors.Wrapf(err, "trade %s: parse price", t.ID)
	}
	return domain.SpotMarketTrade{
		ID:          t.ID,
		BaseAssetID: t.BaseAssetID,
		Buyer:       t.Buyer,
		Seller:      t.Seller,
		Size:        size,
		Price:       price,
		Timestamp:   time.Unix(t.Timestamp, 0).UTC(),
	}, nil
}

type spotVolumeJSON struct {
	Volume string `json:"volume24h"`
	High   string `json:"high24h"`
	Low    string `json:"low24h"`
}

func (v spotVolumeJSON) toDomain() (domain.SpotMarketVolume, error) {
	volume, err := decimal.NewFromString(v.Volume)
	if err != nil {
		return domain.SpotMarketVolume{}, errors.Wrap(err, "parse volume24h")
	}
	high, err := decimal.NewFromString(v.High)
	if err != nil {
		return domain.SpotMarketVolume{}, errors.Wrap(err, "parse high24h")
	}
	low, err := decimal.NewFromString(v.Low)
	if err != nil {
		return domain.SpotMarketVolume{}, errors.Wrap(err, "parse low24h")
	}
	return domain.SpotMarketVolume{Volume: volume, High: high, Low: low}, nil
}

type perpMarketJSON struct {
	BaseTokenAssetID  string `json:"base_token"`
	QuoteTokenAssetID string `json:"quote_token"`
	IMRatio           string `json:"im_ratio"`
	MMRatio           string `json:"mm_ratio"`
	Status            string `json:"status"`
	PausedIndexPrice  string `json:"paused_index_price"`
	PausedTimestamp   int64  `json:"paused_timestamp"`
	ClosedPrice       string `json:"closed_price"`
}

func (m perpMarketJSON) toDomain() (domain.PerpMarket, error) {
	out := domain.PerpMarket{
		BaseTokenAssetID:  m.BaseTokenAssetID,
		QuoteTokenAssetID: m.QuoteTokenAssetID,
		Status:            m.Status,
		PausedTimestamp:   m.PausedTimestamp,
	}
	var err error
	if out.IMRatio, err = decimal.NewFromString(m.IMRatio); err != nil {
		return out, errors.Wrapf(err, "market %s: parse im_ratio", m.BaseTokenAssetID)
	}
	if out.MMRatio, err = decimal.NewFromString(m.MMRatio); err != nil {
		return out, errors.Wrapf(err, "market %s: parse mm_ratio", m.BaseTokenAssetID)
	}
	if out.PausedIndexPrice, err = parseOptionalDecimal(m.PausedIndexPrice); err != nil {
		return out, errors.Wrapf(err, "market %s: parse paused_index_price", m.BaseTokenAssetID)
	}
	if out.ClosedPrice, err = parseOptionalDecimal(m.ClosedPrice); err != nil {
		return out, errors.Wrapf(err, "market %s: parse closed_price", m.BaseTokenAssetID)
	}
	return out, nil
}

type perpPositionJSON struct {
	Trader       string `json:"trader"`
	BaseAssetID  string `json:"base_token"`
	Size         string `json:"taker_position_size"`
	OpenNotional string `json:"taker_open_notional"`
}

func (p perpPositionJSON) toDomain() (domain.PerpPosition, error) {
	size, err := decimal.NewFromString(p.Size)
	if err != nil {
		return domain.PerpPosition{}, errors.Wrapf(err, "position %s/%s: parse size", p.Trader, p.BaseAssetID)
	}
	open, err := decimal.NewFromString(p.OpenNotional)
	if err != nil {
		return domain.PerpPosition{}, errors.Wrapf(err, "position %s/%s: parse open notional", p.Trader, p.BaseAssetID)
	}
	return domain.PerpPosition{
		Trader:       p.Trader,
		BaseAssetID:  p.BaseAssetID,
		Size:         size,
		OpenNotional: open,
	}, nil
}

type perpOrderJSON struct {
	ID          string `json:"id"`
	Trader      string `json:"trader"`
	BaseAssetID string `json:"base_token"`
	Size        string `json:"size"`
	Price       string `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

func (o perpOrderJSON) toDomain() (domain.PerpOrder, error) {
	size, err := decimal.NewFromString(o.Size)
	if err != nil {
		return domain.PerpOrder{}, errors.Wrapf(err, "perp order %s: parse size", o.ID)
	}
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return domain.PerpOrder{}, errors.Wrapf(err, "perp order %s: parse price", o.ID)
	}
	return domain.PerpOrder{
		ID:          o.ID,
		Trader:      o.Trader,
		BaseAssetID: o.BaseAssetID,
		Size:        size,
		Price:       price,
		Timestamp:   time.Unix(o.Timestamp, 0).UTC(),
	}, nil
}

type maxAbsPositionSizeJSON struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

type pendingFundingPaymentJSON struct {
	FundingPayment string `json:"funding_payment"`
	FundingRate    string `json:"funding_rate"`
}

type decimalValueJSON struct {
	Value string `json:"value"`
}

type boolValueJSON struct {
	Value bool `json:"value"`
}

type orderIDJSON struct {
	ID string `json:"id"`
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
