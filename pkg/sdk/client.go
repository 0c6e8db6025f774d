// Package sdk is the Spark trading SDK: order placement, collateral
// management and market/account queries against the Spark gateway and
// indexer. It signs with whichever wallet the caller last activated and
// stays otherwise stateless.
package sdk

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/internal/wallet"
	sdkhttp "github.com/sparkfi/sparkgo/pkg/sdk/http"
)

// Client is the operation surface the network adapter delegates to.
// Failures are opaque to callers; classification happens above.
type Client interface {
	SetActiveWallet(account *wallet.Account)
	ActiveWallet() *wallet.Account
	Provider() domain.Descriptor

	CreateSpotOrder(ctx context.Context, baseToken, quoteToken domain.Token, size, price string) (string, error)
	CancelSpotOrder(ctx context.Context, orderID string) error
	MintToken(ctx context.Context, token domain.Token, amount string) error
	Approve(ctx context.Context, assetID, amount string) error
	Allowance(ctx context.Context, assetID string) (decimal.Decimal, error)
	DepositPerpCollateral(ctx context.Context, assetID, amount string) error
	WithdrawPerpCollateral(ctx context.Context, baseToken, gasToken domain.Token, amount string, oracleUpdateData []string) error
	OpenPerpOrder(ctx context.Context, baseToken, gasToken domain.Token, amount, price string, updateData []string) (string, error)
	RemovePerpOrder(ctx context.Context, orderID string) error
	FulfillPerpOrder(ctx context.Context, gasToken domain.Token, orderID, amount string, updateData []string) error

	FetchSpotMarkets(ctx context.Context, limit int) ([]domain.MarketCreateEvent, error)
	FetchSpotMarketPrice(ctx context.Context, baseAssetID string) (decimal.Decimal, error)
	FetchSpotOrders(ctx context.Context, params domain.FetchOrdersParams) ([]domain.SpotMarketOrder, error)
	FetchSpotTrades(ctx context.Context, params domain.FetchTradesParams) ([]domain.SpotMarketTrade, error)
	FetchSpotVolume(ctx context.Context) (domain.SpotMarketVolume, error)
	FetchPerpCollateralBalance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error)
	FetchPerpAllTraderPositions(ctx context.Context, accountAddress string) ([]domain.PerpPosition, error)
	FetchPerpIsAllowedCollateral(ctx context.Context, assetID string) (bool, error)
	FetchPerpTraderOrders(ctx context.Context, accountAddress, assetID string) ([]domain.PerpOrder, error)
	FetchPerpAllMarkets(ctx context.Context) ([]domain.PerpMarket, error)
	FetchPerpFundingRate(ctx context.Context, assetID string) (decimal.Decimal, error)
	FetchPerpMaxAbsPositionSize(ctx context.Context, accountAddress, assetID string) (domain.PerpMaxAbsPositionSize, error)
	FetchPerpPendingFundingPayment(ctx context.Context, accountAddress, assetID string) (domain.PerpPendingFundingPayment, error)
	FetchPerpMarkPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
}

// Config selects the endpoints and contracts one Spark instance talks to.
type Config struct {
	Network           domain.Descriptor
	IndexerAPIURL     string
	ContractAddresses domain.ContractAddresses
}

// Spark is the REST-backed Client. The active wallet is a single cell
// mutated only through SetActiveWallet, mirroring the session it shadows.
type Spark struct {
	cfg          Config
	indexer      *sdkhttp.Client
	gateway      *sdkhttp.Client
	activeWallet *wallet.Account

	perpMarkets *cachedPerpMarkets
}

var _ Client = (*Spark)(nil)

// New creates a Spark client for the given endpoints.
func New(cfg Config) *Spark {
	return &Spark{
		cfg:         cfg,
		indexer:     sdkhttp.NewClient(cfg.IndexerAPIURL),
		gateway:     sdkhttp.NewClient(cfg.IndexerAPIURL),
		perpMarkets: newCachedPerpMarkets(30 * time.Second),
	}
}

// SetActiveWallet points the SDK at the wallet all subsequent transactions
// sign with. Pass nil to deactivate.
func (s *Spark) SetActiveWallet(account *wallet.Account) {
	s.activeWallet = account
}

// ActiveWallet returns the wallet transactions currently sign with.
func (s *Spark) ActiveWallet() *wallet.Account {
	return s.activeWallet
}

// Provider describes the node endpoint this instance is bound to.
func (s *Spark) Provider() domain.Descriptor {
	return s.cfg.Network
}
