package network

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/internal/wallet"
	"github.com/sparkfi/sparkgo/pkg/sdk"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// fakeSDK records which operations reach the SDK layer. Unoverridden
// methods panic via the embedded interface, which is exactly what we want:
// a trading call slipping past the session check is a test failure.
type fakeSDK struct {
	sdk.Client

	active *wallet.Account

	spotOrders  int
	cancels     int
	mints       []string // minted amounts, in call order
	marketCalls int
}

func (f *fakeSDK) SetActiveWallet(account *wallet.Account) { f.active = account }
func (f *fakeSDK) ActiveWallet() *wallet.Account           { return f.active }

func (f *fakeSDK) CreateSpotOrder(ctx context.Context, baseToken, quoteToken domain.Token, size, price string) (string, error) {
	f.spotOrders++
	return "order-1", nil
}

func (f *fakeSDK) CancelSpotOrder(ctx context.Context, orderID string) error {
	f.cancels++
	return nil
}

func (f *fakeSDK) MintToken(ctx context.Context, token domain.Token, amount string) error {
	f.mints = append(f.mints, amount)
	return nil
}

func (f *fakeSDK) FetchSpotMarkets(ctx context.Context, limit int) ([]domain.MarketCreateEvent, error) {
	f.marketCalls++
	return []domain.MarketCreateEvent{{ID: "m1"}}, nil
}

func newTestNetwork(t *testing.T) (*FuelNetwork, *fakeSDK) {
	t.Helper()
	fake := &fakeSDK{}
	fuel, err := NewFuelNetwork(FuelNetworkOptions{SDK: fake})
	if err != nil {
		t.Fatalf("NewFuelNetwork() error: %v", err)
	}
	return fuel, fake
}

func TestTradingRequiresWallet(t *testing.T) {
	ctx := context.Background()
	fuel, fake := newTestNetwork(t)

	btc, err := fuel.TokenBySymbol("BTC")
	if err != nil {
		t.Fatalf("TokenBySymbol(BTC) error: %v", err)
	}

	tests := []struct {
		name string
		op   func() error
	}{
		{"CreateSpotOrder", func() error {
			_, err := fuel.CreateSpotOrder(ctx, btc.AssetID, "1", "65000")
			return err
		}},
		{"CancelSpotOrder", func() error { return fuel.CancelSpotOrder(ctx, "order-1") }},
		{"MintToken", func() error { return fuel.MintToken(ctx, btc.AssetID) }},
		{"Approve", func() error { return fuel.Approve(ctx, btc.AssetID, "1") }},
		{"DepositPerpCollateral", func() error { return fuel.DepositPerpCollateral(ctx, btc.AssetID, "1") }},
		{"WithdrawPerpCollateral", func() error { return fuel.WithdrawPerpCollateral(ctx, btc.AssetID, "1", nil) }},
		{"OpenPerpOrder", func() error {
			_, err := fuel.OpenPerpOrder(ctx, btc.AssetID, "1", "65000", nil)
			return err
		}},
		{"RemovePerpOrder", func() error { return fuel.RemovePerpOrder(ctx, "order-1") }},
		{"FulfillPerpOrder", func() error { return fuel.FulfillPerpOrder(ctx, "order-1", "1", nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if !domain.IsCode(err, domain.CodeNoActiveWallet) {
				t.Errorf("error = %v, want NO_ACTIVE_WALLET", err)
			}
		})
	}

	// The session check must fire before anything reaches the SDK.
	if fake.spotOrders != 0 || fake.cancels != 0 || len(fake.mints) != 0 {
		t.Error("no SDK trading call may happen without a session")
	}
}

func TestSessionResyncsSDKWallet(t *testing.T) {
	ctx := context.Background()
	fuel, fake := newTestNetwork(t)

	if err := fuel.ConnectWalletByPrivateKey(ctx, testKey); err != nil {
		t.Fatalf("ConnectWalletByPrivateKey() error: %v", err)
	}
	if fake.active == nil {
		t.Fatal("connect must point the SDK at the new session")
	}
	if fake.active.Address != fuel.Address() {
		t.Errorf("SDK wallet address = %s, want %s", fake.active.Address, fuel.Address())
	}

	if err := fuel.DisconnectWallet(ctx); err != nil {
		t.Fatalf("DisconnectWallet() error: %v", err)
	}
	if fake.active != nil {
		t.Error("disconnect must clear the SDK wallet")
	}
	if fuel.Address() != "" {
		t.Error("disconnect must clear the session address")
	}
}

func TestIsExternalWallet(t *testing.T) {
	ctx := context.Background()
	fuel, _ := newTestNetwork(t)

	if fuel.IsExternalWallet() {
		t.Error("disconnected session is not external")
	}
	if err := fuel.ConnectWalletByPrivateKey(ctx, testKey); err != nil {
		t.Fatalf("ConnectWalletByPrivateKey() error: %v", err)
	}
	if fuel.IsExternalWallet() {
		t.Error("key-import session is not external")
	}
}

func TestMintTokenUsesFaucetAmount(t *testing.T) {
	ctx := context.Background()
	fuel, fake := newTestNetwork(t)

	if err := fuel.ConnectWalletByPrivateKey(ctx, testKey); err != nil {
		t.Fatalf("ConnectWalletByPrivateKey() error: %v", err)
	}

	usdc, err := fuel.TokenBySymbol("USDC")
	if err != nil {
		t.Fatalf("TokenBySymbol(USDC) error: %v", err)
	}
	if err := fuel.MintToken(ctx, usdc.AssetID); err != nil {
		t.Fatalf("MintToken() error: %v", err)
	}
	if len(fake.mints) != 1 || fake.mints[0] != FaucetAmounts["USDC"] {
		t.Errorf("minted %v, want [%s]", fake.mints, FaucetAmounts["USDC"])
	}
}

func TestReadOnlyFetchNeedsNoSession(t *testing.T) {
	fuel, fake := newTestNetwork(t)

	markets, err := fuel.FetchSpotMarkets(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchSpotMarkets() error: %v", err)
	}
	if len(markets) != 1 || fake.marketCalls != 1 {
		t.Error("read-only queries must pass through without a session")
	}
}

func TestCreateSpotOrderResolvesTokens(t *testing.T) {
	ctx := context.Background()
	fuel, fake := newTestNetwork(t)

	if err := fuel.ConnectWalletByPrivateKey(ctx, testKey); err != nil {
		t.Fatalf("ConnectWalletByPrivateKey() error: %v", err)
	}

	t.Run("unknown base asset is NOT_FOUND", func(t *testing.T) {
		_, err := fuel.CreateSpotOrder(ctx, "0xdeadbeef", "1", "65000")
		if !domain.IsCode(err, domain.CodeNotFound) {
			t.Errorf("error = %v, want NOT_FOUND", err)
		}
		if fake.spotOrders != 0 {
			t.Error("unresolvable token must not reach the SDK")
		}
	})

	t.Run("known base asset places the order", func(t *testing.T) {
		btc, err := fuel.TokenBySymbol("BTC")
		if err != nil {
			t.Fatalf("TokenBySymbol(BTC) error: %v", err)
		}
		orderID, err := fuel.CreateSpotOrder(ctx, btc.AssetID, "1", "65000")
		if err != nil {
			t.Fatalf("CreateSpotOrder() error: %v", err)
		}
		if orderID != "order-1" {
			t.Errorf("orderID = %s, want order-1", orderID)
		}
	})
}

func TestBalanceWithoutProvider(t *testing.T) {
	fuel, _ := newTestNetwork(t)
	bal, err := fuel.Balance(context.Background(), "0xabc", "0x01")
	if !domain.IsCode(err, domain.CodeProviderUnavailable) {
		t.Errorf("error = %v, want PROVIDER_UNAVAILABLE", err)
	}
	if !bal.Equal(decimal.Zero) {
		t.Errorf("failed balance = %s, want 0", bal.String())
	}
}
