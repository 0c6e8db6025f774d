package sdk

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
	sdkhttp "github.com/sparkfi/sparkgo/pkg/sdk/http"
)

var errNoActiveWallet = errors.New("sdk: no active wallet")

// CreateSpotOrder submits a spot order on the base/quote book and returns
// the gateway-assigned order id.
func (s *Spark) CreateSpotOrder(ctx context.Context, baseToken, quoteToken domain.Token, size, price string) (string, error) {
	if s.activeWallet == nil {
		return "", errNoActiveWallet
	}
	body := map[string]any{
		"base_token":  baseToken.AssetID,
		"quote_token": quoteToken.AssetID,
		"size":        size,
		"price":       price,
		"nonce":       uuid.NewString(),
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return "", err
	}
	var out orderIDJSON
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/spot/orders", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return "", errors.Wrap(err, "create spot order")
	}
	return out.ID, nil
}

// CancelSpotOrder cancels an open spot order by id.
func (s *Spark) CancelSpotOrder(ctx context.Context, orderID string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	headers, err := signedHeaders(s.activeWallet, orderID)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodDelete, "/spot/orders/"+orderID, &sdkhttp.RequestOptions{
		Headers: headers,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "cancel spot order %s", orderID)
	}
	return nil
}

// MintToken mints amount of a testnet token to the active wallet.
func (s *Spark) MintToken(ctx context.Context, token domain.Token, amount string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	body := map[string]any{"amount": amount}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/tokens/"+token.AssetID+"/mint", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "mint %s", token.Symbol)
	}
	return nil
}

// Approve raises the vault allowance for an asset.
func (s *Spark) Approve(ctx context.Context, assetID, amount string) error {
	if s.activeWallet == nil {
		return errNoActiveWallet
	}
	body := map[string]any{
		"token":   assetID,
		"amount":  amount,
		"spender": s.cfg.ContractAddresses.Vault,
	}
	headers, err := signedHeaders(s.activeWallet, body)
	if err != nil {
		return err
	}
	resp, err := s.gateway.DoRequest(ctx, http.MethodPost, "/allowance/approve", &sdkhttp.RequestOptions{
		Headers: headers,
		Data:    body,
	}, nil)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return errors.Wrapf(err, "approve %s", assetID)
	}
	return nil
}

// Allowance reads the current vault allowance for an asset.
func (s *Spark) Allowance(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if s.activeWallet == nil {
		return decimal.Zero, errNoActiveWallet
	}
	var out decimalValueJSON
	resp, err := s.gateway.DoRequest(ctx, http.MethodGet, "/allowance", &sdkhttp.RequestOptions{
		Params: map[string]any{
			"token":   assetID,
			"trader":  s.activeWallet.Address,
			"spender": s.cfg.ContractAddresses.Vault,
		},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return decimal.Zero, errors.Wrapf(err, "fetch allowance for %s", assetID)
	}
	v, err := decimal.NewFromString(out.Value)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse allowance")
	}
	return v, nil
}

// FetchSpotMarkets lists the most recent market create events.
func (s *Spark) FetchSpotMarkets(ctx context.Context, limit int) ([]domain.MarketCreateEvent, error) {
	var out []marketCreateEventJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/spot/marketCreateEvents", &sdkhttp.RequestOptions{
		Params: map[string]any{"limit": limit},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch spot markets")
	}
	events := make([]domain.MarketCreateEvent, 0, len(out))
	for _, e := range out {
		events = append(events, e.toDomain())
	}
	return events, nil
}

// FetchSpotMarketPrice returns the mid price for a base asset.
func (s *Spark) FetchSpotMarketPrice(ctx context.Context, baseAssetID string) (decimal.Decimal, error) {
	var out decimalValueJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/spot/marketPrice", &sdkhttp.RequestOptions{
		Params: map[string]any{"baseToken": baseAssetID},
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return decimal.Zero, errors.Wrapf(err, "fetch market price for %s", baseAssetID)
	}
	v, err := decimal.NewFromString(out.Value)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse market price")
	}
	return v, nil
}

// FetchSpotOrders queries order records from the indexer.
func (s *Spark) FetchSpotOrders(ctx context.Context, params domain.FetchOrdersParams) ([]domain.SpotMarketOrder, error) {
	query := map[string]any{
		"baseToken": params.BaseToken,
		"limit":     params.Limit,
	}
	if params.Type != "" {
		query["orderType"] = string(params.Type)
	}
	if params.Trader != "" {
		query["trader"] = params.Trader
	}
	if params.IsOpened != nil {
		query["isOpened"] = *params.IsOpened
	}
	var out []spotOrderJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/spot/orders", &sdkhttp.RequestOptions{
		Params: query,
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch spot orders")
	}
	orders := make([]domain.SpotMarketOrder, 0, len(out))
	for _, o := range out {
		order, err := o.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchSpotTrades queries trade records from the indexer.
func (s *Spark) FetchSpotTrades(ctx context.Context, params domain.FetchTradesParams) ([]domain.SpotMarketTrade, error) {
	query := map[string]any{
		"baseToken": params.BaseToken,
		"limit":     params.Limit,
	}
	if params.Trader != "" {
		query["trader"] = params.Trader
	}
	var out []spotTradeJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/spot/trades", &sdkhttp.RequestOptions{
		Params: query,
	}, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "fetch spot trades")
	}
	trades := make([]domain.SpotMarketTrade, 0, len(out))
	for _, t := range out {
		trade, err := t.toDomain()
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// FetchSpotVolume returns the 24h volume summary.
func (s *Spark) FetchSpotVolume(ctx context.Context) (domain.SpotMarketVolume, error) {
	var out spotVolumeJSON
	resp, err := s.indexer.DoRequest(ctx, http.MethodGet, "/spot/statistics", nil, &out)
	if err := sdkhttp.CheckResponse(resp, err); err != nil {
		return domain.SpotMarketVolume{}, errors.Wrap(err, "fetch spot volume")
	}
	return out.toDomain()
}
