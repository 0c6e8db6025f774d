package network

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/assets"
	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/internal/history"
	"github.com/sparkfi/sparkgo/internal/wallet"
	"github.com/sparkfi/sparkgo/pkg/logger"
	"github.com/sparkfi/sparkgo/pkg/sdk"
)

// FuelNetwork implements BlockchainNetwork for the Fuel deployment of
// Spark. It owns one wallet manager and one SDK client; after every
// session change the SDK's active wallet is re-pointed at the current
// session so signing and the session can never drift apart.
type FuelNetwork struct {
	net      domain.Descriptor
	registry *assets.Registry
	wallet   *wallet.Manager
	sdk      sdk.Client
	journal  *history.Journal
}

var _ BlockchainNetwork = (*FuelNetwork)(nil)

// FuelNetworkOptions inject the adapter's collaborators. Registry and SDK
// default to the Fuel beta-5 deployment; Provider and Journal may be nil.
type FuelNetworkOptions struct {
	Registry *assets.Registry
	Provider wallet.Provider
	SDK      sdk.Client
	Journal  *history.Journal
}

// NewFuelNetwork builds the Fuel adapter.
func NewFuelNetwork(opts FuelNetworkOptions) (*FuelNetwork, error) {
	registry := opts.Registry
	if registry == nil {
		var err error
		registry, err = assets.DefaultRegistry()
		if err != nil {
			return nil, err
		}
	}
	client := opts.SDK
	if client == nil {
		client = sdk.New(sdk.Config{
			Network:           FuelNetworks[0],
			IndexerAPIURL:     FuelIndexerURL,
			ContractAddresses: FuelContracts,
		})
	}
	return &FuelNetwork{
		net:      FuelNetworks[0],
		registry: registry,
		wallet:   wallet.NewManager(opts.Provider),
		sdk:      client,
		journal:  opts.Journal,
	}, nil
}

func (f *FuelNetwork) NetworkType() Type {
	return TypeFuel
}

// Network returns the endpoint this adapter is bound to.
func (f *FuelNetwork) Network() domain.Descriptor {
	return f.net
}

func (f *FuelNetwork) Address() string {
	return f.wallet.Address()
}

func (f *FuelNetwork) PrivateKey() string {
	return f.wallet.PrivateKey()
}

// IsExternalWallet reports whether the session came from the ambient
// provider rather than an imported key.
func (f *FuelNetwork) IsExternalWallet() bool {
	return f.wallet.Account() != nil && f.wallet.PrivateKey() == ""
}

func (f *FuelNetwork) TokenList() []domain.Token {
	return f.registry.List()
}

func (f *FuelNetwork) TokenBySymbol(symbol string) (domain.Token, error) {
	return f.registry.BySymbol(symbol)
}

func (f *FuelNetwork) TokenByAssetID(assetID string) (domain.Token, error) {
	return f.registry.ByAssetID(assetID)
}

// ConnectWallet opens a provider session and re-syncs the SDK wallet.
func (f *FuelNetwork) ConnectWallet(ctx context.Context) error {
	if err := f.wallet.Connect(ctx); err != nil {
		return err
	}
	f.sdk.SetActiveWallet(f.wallet.Account())
	return nil
}

// ConnectWalletByPrivateKey opens a key-import session and re-syncs the
// SDK wallet.
func (f *FuelNetwork) ConnectWalletByPrivateKey(ctx context.Context, privateKey string) error {
	if err := f.wallet.ConnectByPrivateKey(ctx, privateKey); err != nil {
		return err
	}
	f.sdk.SetActiveWallet(f.wallet.Account())
	return nil
}

// ConnectWalletByMnemonic opens a session from a BIP-39 mnemonic and
// re-syncs the SDK wallet.
func (f *FuelNetwork) ConnectWalletByMnemonic(ctx context.Context, mnemonic string) error {
	if err := f.wallet.ConnectByMnemonic(ctx, mnemonic); err != nil {
		return err
	}
	f.sdk.SetActiveWallet(f.wallet.Account())
	return nil
}

// DisconnectWallet clears the session. The SDK wallet is re-synced (to
// nil) even though the manager never fails here.
func (f *FuelNetwork) DisconnectWallet(ctx context.Context) error {
	f.wallet.Disconnect(ctx)
	f.sdk.SetActiveWallet(f.wallet.Account())
	return nil
}

func (f *FuelNetwork) AddAssetToWallet(ctx context.Context, assetID string) error {
	return f.wallet.AddAsset(ctx, assetID)
}

func (f *FuelNetwork) Balance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error) {
	return f.wallet.Balance(ctx, accountAddress, assetID)
}

// requireWallet is the fail-fast session precondition for trading
// operations: no SDK call may happen without an active session.
func (f *FuelNetwork) requireWallet() error {
	if f.wallet.Account() == nil {
		return domain.NewNetworkError(domain.CodeNoActiveWallet, "wallet is not connected")
	}
	return nil
}

func (f *FuelNetwork) record(ctx context.Context, e history.Entry) {
	if f.journal == nil {
		return
	}
	e.Trader = f.wallet.Address()
	if err := f.journal.Record(ctx, e); err != nil {
		logger.Warnf("[fuel] journal write failed: %v", err)
	}
}

// CreateSpotOrder places an order on the assetID/USDC book.
func (f *FuelNetwork) CreateSpotOrder(ctx context.Context, assetID, size, price string) (string, error) {
	if err := f.requireWallet(); err != nil {
		return "", err
	}
	baseToken, err := f.registry.ByAssetID(assetID)
	if err != nil {
		return "", err
	}
	quoteToken, err := f.registry.BySymbol("USDC")
	if err != nil {
		return "", err
	}
	orderID, err := f.sdk.CreateSpotOrder(ctx, baseToken, quoteToken, size, price)
	if err != nil {
		return "", err
	}
	f.record(ctx, history.Entry{
		OrderID: orderID,
		Market:  baseToken.NormalizedAssetID(),
		Kind:    history.KindSpot,
		Action:  history.ActionCreate,
		Size:    size,
		Price:   price,
	})
	return orderID, nil
}

func (f *FuelNetwork) CancelSpotOrder(ctx context.Context, orderID string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	if err := f.sdk.CancelSpotOrder(ctx, orderID); err != nil {
		return err
	}
	f.record(ctx, history.Entry{
		OrderID: orderID,
		Kind:    history.KindSpot,
		Action:  history.ActionCancel,
	})
	return nil
}

// MintToken mints the faucet amount of the given testnet asset.
func (f *FuelNetwork) MintToken(ctx context.Context, assetID string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	token, err := f.registry.ByAssetID(assetID)
	if err != nil {
		return err
	}
	amount, ok := FaucetAmounts[token.Symbol]
	if !ok {
		return domain.NewNetworkError(domain.CodeNotFound, "no faucet amount for "+token.Symbol)
	}
	return f.sdk.MintToken(ctx, token, amount)
}

func (f *FuelNetwork) Approve(ctx context.Context, assetID, amount string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	return f.sdk.Approve(ctx, assetID, amount)
}

func (f *FuelNetwork) Allowance(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if err := f.requireWallet(); err != nil {
		return decimal.Zero, err
	}
	return f.sdk.Allowance(ctx, assetID)
}

func (f *FuelNetwork) DepositPerpCollateral(ctx context.Context, assetID, amount string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	return f.sdk.DepositPerpCollateral(ctx, assetID, amount)
}

// WithdrawPerpCollateral resolves the collateral and gas tokens, then
// delegates.
func (f *FuelNetwork) WithdrawPerpCollateral(ctx context.Context, assetID, amount string, oracleUpdateData []string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	baseToken, err := f.registry.ByAssetID(assetID)
	if err != nil {
		return err
	}
	gasToken, err := f.registry.BySymbol("ETH")
	if err != nil {
		return err
	}
	return f.sdk.WithdrawPerpCollateral(ctx, baseToken, gasToken, amount, oracleUpdateData)
}

func (f *FuelNetwork) OpenPerpOrder(ctx context.Context, assetID, amount, price string, updateData []string) (string, error) {
	if err := f.requireWallet(); err != nil {
		return "", err
	}
	baseToken, err := f.registry.ByAssetID(assetID)
	if err != nil {
		return "", err
	}
	gasToken, err := f.registry.BySymbol("ETH")
	if err != nil {
		return "", err
	}
	orderID, err := f.sdk.OpenPerpOrder(ctx, baseToken, gasToken, amount, price, updateData)
	if err != nil {
		return "", err
	}
	f.record(ctx, history.Entry{
		OrderID: orderID,
		Market:  baseToken.NormalizedAssetID(),
		Kind:    history.KindPerp,
		Action:  history.ActionCreate,
		Size:    amount,
		Price:   price,
	})
	return orderID, nil
}

func (f *FuelNetwork) RemovePerpOrder(ctx context.Context, orderID string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	if err := f.sdk.RemovePerpOrder(ctx, orderID); err != nil {
		return err
	}
	f.record(ctx, history.Entry{
		OrderID: orderID,
		Kind:    history.KindPerp,
		Action:  history.ActionCancel,
	})
	return nil
}

func (f *FuelNetwork) FulfillPerpOrder(ctx context.Context, orderID, amount string, updateData []string) error {
	if err := f.requireWallet(); err != nil {
		return err
	}
	gasToken, err := f.registry.BySymbol("ETH")
	if err != nil {
		return err
	}
	if err := f.sdk.FulfillPerpOrder(ctx, gasToken, orderID, amount, updateData); err != nil {
		return err
	}
	f.record(ctx, history.Entry{
		OrderID: orderID,
		Kind:    history.KindPerp,
		Action:  history.ActionFulfill,
		Size:    amount,
	})
	return nil
}

// Read-only queries pass through; no session needed.

func (f *FuelNetwork) FetchSpotMarkets(ctx context.Context, limit int) ([]domain.MarketCreateEvent, error) {
	return f.sdk.FetchSpotMarkets(ctx, limit)
}

func (f *FuelNetwork) FetchSpotMarketPrice(ctx context.Context, baseAssetID string) (decimal.Decimal, error) {
	return f.sdk.FetchSpotMarketPrice(ctx, baseAssetID)
}

func (f *FuelNetwork) FetchSpotOrders(ctx context.Context, params domain.FetchOrdersParams) ([]domain.SpotMarketOrder, error) {
	return f.sdk.FetchSpotOrders(ctx, params)
}

func (f *FuelNetwork) FetchSpotTrades(ctx context.Context, params domain.FetchTradesParams) ([]domain.SpotMarketTrade, error) {
	return f.sdk.FetchSpotTrades(ctx, params)
}

func (f *FuelNetwork) FetchSpotVolume(ctx context.Context) (domain.SpotMarketVolume, error) {
	return f.sdk.FetchSpotVolume(ctx)
}

func (f *FuelNetwork) FetchPerpCollateralBalance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error) {
	return f.sdk.FetchPerpCollateralBalance(ctx, accountAddress, assetID)
}

func (f *FuelNetwork) FetchPerpAllTraderPositions(ctx context.Context, accountAddress string) ([]domain.PerpPosition, error) {
	return f.sdk.FetchPerpAllTraderPositions(ctx, accountAddress)
}

func (f *FuelNetwork) FetchPerpIsAllowedCollateral(ctx context.Context, assetID string) (bool, error) {
	return f.sdk.FetchPerpIsAllowedCollateral(ctx, assetID)
}

func (f *FuelNetwork) FetchPerpTraderOrders(ctx context.Context, accountAddress, assetID string) ([]domain.PerpOrder, error) {
	return f.sdk.FetchPerpTraderOrders(ctx, accountAddress, assetID)
}

func (f *FuelNetwork) FetchPerpAllMarkets(ctx context.Context) ([]domain.PerpMarket, error) {
	return f.sdk.FetchPerpAllMarkets(ctx)
}

func (f *FuelNetwork) FetchPerpFundingRate(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return f.sdk.FetchPerpFundingRate(ctx, assetID)
}

func (f *FuelNetwork) FetchPerpMaxAbsPositionSize(ctx context.Context, accountAddress, assetID string) (domain.PerpMaxAbsPositionSize, error) {
	return f.sdk.FetchPerpMaxAbsPositionSize(ctx, accountAddress, assetID)
}

func (f *FuelNetwork) FetchPerpPendingFundingPayment(ctx context.Context, accountAddress, assetID string) (domain.PerpPendingFundingPayment, error) {
	return f.sdk.FetchPerpPendingFundingPayment(ctx, accountAddress, assetID)
}

func (f *FuelNetwork) FetchPerpMarkPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	return f.sdk.FetchPerpMarkPrice(ctx, assetID)
}
