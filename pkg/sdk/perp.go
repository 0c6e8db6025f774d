package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/pkg/cache"
	sdkhttp "github.com/sparkfi/sparkgo/pkg/sdk/http"
)

// cachedPerpMarkets softens the market-list read: risk parameters change
// rarely, the UI polls often.
type cachedPerpMarkets struct {
	cache *cache.TTL[string, []domain.PerpMarket]
}

func newCachedPerpMarkets(ttl time.Duration) *cachedPerpMarkets {
	return &cachedPerpMarkets{cache: cache.NewTTL[string, []domain.PerpMarket](ttl)}
}

const perpMarketsKey = "perp:markets"

// DepositPerpCollateral moves collateral into the perp vault.
func (s *Spark) DepositPerpCollateral(ctx context.Context, assetID, amount string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	body := map[string]any{
		"token":  assetID,
		"amount": amount,
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/perp/collateral/deposit", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "deposit perp collateral %s", assetID)
	}
	return nil
}

// WithdrawPerpCollateral moves collateral out of the perp vault. Oracle
// update data is forwarded so the withdrawal is priced against fresh feeds.
func (s *Spark) WithdrawPerpCollateral(ctx context.Context, baseToken, gasToken domain.Token, amount string, oracleUpdateData []string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	body := map[string]any{
		"base_token":         baseToken.AssetID,
		"gas_token":          gasToken.AssetID,
		"amount":             amount,
		"oracle_update_data": oracleUpdateData,
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/perp/collateral/withdraw", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "withdraw perp collateral %s", baseToken.Symbol)
	}
	return nil
}

// OpenPerpOrder places a perpetual order and returns its id.
func (s *Spark) OpenPerpOrder(ctx context.Context, baseToken, gasToken domain.Token, amount, price string, updateData []string) (string, error) {
	if s.activeWallet == nil {
		return "", errNoActiveWallet
	}
	body := map[string]any{
		"base_token":  baseToken.AssetID,
		"gas_token":   gasToken.AssetID,
		"amount":      amount,
		"price":       price,
		"update_data": updateData,
		"nonce":       uuid.NewString(),
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return "", err
	}
	var out orderIDJSON
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/perp/orders", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return "", errors.Wrap(err, "open perp order")
	}
	return out.ID, nil
}

// RemovePerpOrder cancels an open perpetual order.
func (s *Spark) RemovePerpOrder(ctx context.Context, orderID string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	headers, err := signedHeaders(s.activeWallet, orderID)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodDelete, "/perp/orders/"+orderID, &sdkhttp.RequestOptions{
		Headers: headers,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "remove perp order %s", orderID)
	}
	return nil
}

// FulfillPerpOrder matches an existing perp order for amount.
func (s *Spark) FulfillPerpOrder(ctx context.Context, gasToken domain.Token, orderID, amount string, updateData []string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	body := map[string]any{
		"gas_token":   gasToken.AssetID,
		"amount":      amount,
		"update_data": updateData,
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/perp/orders/"+orderID+"/fulfill", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "fulfill perp order %s", orderID)
	}
	return nil
}

// FetchPerpCollateralBalance returns a trader's free collateral in one asset.
func (s *Spark) FetchPerpCollateralBalance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error) {
	return s.fetchDecimal(ctx, "/perp/collateralBalance", map[string]any{
		"trader": accountAddress,
		"token":  assetID,
	}, "perp collateral balance")
}

// FetchPerpAllTraderPositions lists every open position for a trader.
func (s *Spark) FetchPerpAllTraderPositions(ctx context.Context, accountAddress string) ([]domain.PerpPosition, error) {
	var out []perpPositionJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/positions", &sdkhttp.RequestOptions{
		Params: map[string]any{"trader": accountAddress},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch perp positions")
	}
	positions := make([]domain.PerpPosition, 0, len(out))
	for _, p := range out {
		position, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, nil
}

// FetchPerpIsAllowedCollateral reports whether an asset is accepted as
// collateral.
func (s *Spark) FetchPerpIsAllowedCollateral(ctx context.Context, assetID string) (bool, error) {
	var out boolValueJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/isAllowedCollateral", &sdkhttp.RequestOptions{
		Params: map[string]any{"token": assetID},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return false, errors.Wrapf(err, "fetch allowed collateral for %s", assetID)
	}
	return out.Value, nil
}

// FetchPerpTraderOrders lists a trader's open perp orders on one market.
func (s *Spark) FetchPerpTraderOrders(ctx context.Context, accountAddress, assetID string) ([]domain.PerpOrder, error) {
	var out []perpOrderJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/orders", &sdkhttp.RequestOptions{
		Params: map[string]any{
			"trader":    accountAddress,
			"baseToken": assetID,
		},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch perp trader orders")
	}
	orders := make([]domain.PerpOrder, 0, len(out))
	for _, o := range out {
		order, err := o.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchPerpAllMarkets lists all perp markets. Results are cached briefly.
func (s *Spark) FetchPerpAllMarkets(ctx context.Context) ([]domain.PerpMarket, error) {
	if markets, ok := s.perpMarkets.cache.Get(perpMarketsKey); ok {
		return markets, nil
	}
	var out []perpMarketJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/markets", nil, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch perp markets")
	}
	markets := make([]domain.PerpMarket, 0, len(out))
	for _, m := range out {
		market, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		markets = append(markets, market)
	}
	s.perpMarkets.cache.Set(perpMarketsKey, markets)
	return markets, nil
}

// FetchPerpFundingRate returns the current funding rate for a market.
func (s *Spark) FetchPerpFundingRate(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return s.fetchDecimal(ctx, "/perp/fundingRate", map[string]any{
		"baseToken": assetID,
	}, "perp funding rate")
}

// FetchPerpMaxAbsPositionSize bounds the size a trader may open on each side.
func (s *Spark) FetchPerpMaxAbsPositionSize(ctx context.Context, accountAddress, assetID string) (domain.PerpMaxAbsPositionSize, error) {
	var out maxAbsPositionSizeJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/maxAbsPositionSize", &sdkhttp.RequestOptions{
		Params: map[string]any{
			"trader":    accountAddress,
			"baseToken": assetID,
		},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return domain.PerpMaxAbsPositionSize{}, errors.Wrap(err, "fetch perp max position size")
	}
	short, err := decimal.NewFromString(out.Short)
	if err != nil {
		return domain.PerpMaxAbsPositionSize{}, errors.Wrap(err, "parse short bound")
	}
	long, err := decimal.NewFromString(out.Long)
	if err != nil {
		return domain.PerpMaxAbsPositionSize{}, errors.Wrap(err, "parse long bound")
	}
	return domain.PerpMaxAbsPositionSize{Short: short, Long: long}, nil
}

// FetchPerpPendingFundingPayment returns the funding a trader currently owes.
func (s *Spark) FetchPerpPendingFundingPayment(ctx context.Context, accountAddress, assetID string) (domain.PerpPendingFundingPayment, error) {
	var out pendingFundingPaymentJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/perp/pendingFundingPayment", &sdkhttp.RequestOptions{
		Params: map[string]any{
			"trader":    accountAddress,
			"baseToken": assetID,
		},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return domain.PerpPendingFundingPayment{}, errors.Wrap(err, "fetch pending funding payment")
	}
	payment, err := decimal.NewFromString(out.FundingPayment)
	if err != nil {
		return domain.PerpPendingFundingPayment{}, errors.Wrap(err, "parse funding payment")
	}
	rate, err := decimal.NewFromString(out.FundingRate)
	if err != nil {
		return domain.PerpPendingFundingPayment{}, errors.Wrap(err, "parse funding rate")
	}
	return domain.PerpPendingFundingPayment{FundingPayment: payment, FundingRate: rate}, nil
}

// FetchPerpMarkPrice returns the mark price for a market.
func (s *Spark) FetchPerpMarkPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return s.fetchDecimal(ctx, "/perp/markPrice", map[string]any{
		"baseToken": assetID,
	}, "perp mark price")
}

func (s *Spark) fetchDecimal(ctx context.Context, endpoint string, params map[string]any, what string) (decimal.Decimal, error) {
	var out decimalValueJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, endpoint, &sdkhttp.RequestOptions{
		Params: params,
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return decimal.Zero, errors.Wrapf(err, "fetch %s", what)
	}
	v, err := decimal.NewFromString(out.Value)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse %s", what)
	}
	return v, nil
}
