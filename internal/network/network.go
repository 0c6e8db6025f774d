package network

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
)

// Type discriminates concrete network implementations.
type Type string

const (
	TypeFuel Type = "FUEL"
)

// BlockchainNetwork is the uniform capability surface every concrete
// network exposes. Callers above this interface never know which chain is
// active. New chains are added as new implementations selected by Type,
// never by extending a concrete one.
type BlockchainNetwork interface {
	// Identity.
	NetworkType() Type
	Address() string
	PrivateKey() string
	IsExternalWallet() bool

	// Token lookups, backed by the asset registry. Asset id lookups are
	// case-insensitive; a miss is a classified NOT_FOUND error.
	TokenList() []domain.Token
	TokenBySymbol(symbol string) (domain.Token, error)
	TokenByAssetID(assetID string) (domain.Token, error)

	// Session lifecycle. Every state change must leave the SDK's active
	// wallet consistent with the session.
	ConnectWallet(ctx context.Context) error
	ConnectWalletByPrivateKey(ctx context.Context, privateKey string) error
	ConnectWalletByMnemonic(ctx context.Context, mnemonic string) error
	DisconnectWallet(ctx context.Context) error
	AddAssetToWallet(ctx context.Context, assetID string) error
	Balance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error)

	// Trading operations. Each requires an active session and fails with
	// NO_ACTIVE_WALLET before touching the SDK when there is none.
	CreateSpotOrder(ctx context.Context, assetID, size, price string) (string, error)
	CancelSpotOrder(ctx context.Context, orderID string) error
	MintToken(ctx context.Context, assetID string) error
	Approve(ctx context.Context, assetID, amount string) error
	Allowance(ctx context.Context, assetID string) (decimal.Decimal, error)
	DepositPerpCollateral(ctx context.Context, assetID, amount string) error
	WithdrawPerpCollateral(ctx context.Context, assetID, amount string, oracleUpdateData []string) error
	OpenPerpOrder(ctx context.Context, assetID, amount, price string, updateData []string) (string, error)
	RemovePerpOrder(ctx context.Context, orderID string) error
	FulfillPerpOrder(ctx context.Context, orderID, amount string, updateData []string) error

	// Read-only market and account queries. No session required.
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
