// Package wallet owns the single mutable wallet session: address, key and
// provider handle. One manager, one session, mutated only by its own
// connect/disconnect operations; callers serialize those themselves.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
)

// Provider is the ambient wallet capability (browser extension or local
// signer daemon). Connect blocks until the provider answers; cancellation
// is the caller's concern via ctx.
type Provider interface {
	Connect(ctx context.Context) (address string, err error)
	Disconnect(ctx context.Context) error
	Balance(ctx context.Context, accountAddress, assetID string) (string, error)
	AddAsset(ctx context.Context, assetID string) error
}

// Account is the opaque signing handle handed to the SDK. PrivateKey is nil
// for provider-backed (external) sessions.
type Account struct {
	Address    string
	PrivateKey *ecdsa.PrivateKey
}

// Manager holds the session cell. Invariant: address is set exactly when a
// session is active; privateKey is set only for key-import sessions.
type Manager struct {
	provider   Provider
	address    string
	privateKey string
	account    *Account
}

// NewManager creates a disconnected manager over provider (may be nil when
// no ambient wallet exists, e.g. headless use).
func NewManager(provider Provider) *Manager {
	return &Manager{provider: provider}
}

// Connect asks the provider for a session. Provider-side classifications
// (PROVIDER_REJECTED, UNKNOWN_ACCOUNT, ...) propagate unchanged.
func (m *Manager) Connect(ctx context.Context) error {
	if m.provider == nil {
		return domain.NewNetworkError(domain.CodeProviderUnavailable, "no wallet provider configured")
	}
	address, err := m.provider.Connect(ctx)
	if err != nil {
		return err
	}
	m.address = address
	m.privateKey = ""
	m.account = &Account{Address: address}
	return nil
}

// ConnectByPrivateKey derives the address from key and opens a key-import
// session. The key is kept verbatim so a later snapshot restores the same
// session.
func (m *Manager) ConnectByPrivateKey(ctx context.Context, key string) error {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	if err != nil {
		return domain.WrapNetworkError(domain.CodeInvalidKey, "derive account from private key", err)
	}
	address := crypto.PubkeyToAddress(pk.PublicKey).Hex()
	m.address = address
	m.privateKey = key
	m.account = &Account{Address: address, PrivateKey: pk}
	return nil
}

// ConnectByMnemonic derives the default account (m/44'/60'/0'/0/0) from a
// BIP-39 mnemonic and opens a key-import session.
func (m *Manager) ConnectByMnemonic(ctx context.Context, mnemonic string) error {
	hd, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return domain.WrapNetworkError(domain.CodeInvalidKey, "derive wallet from mnemonic", err)
	}
	account, err := hd.Derive(hdwallet.MustParseDerivationPath("m/44'/60'/0'/0/0"), false)
	if err != nil {
		return domain.WrapNetworkError(domain.CodeInvalidKey, "derive default account", err)
	}
	key, err := hd.PrivateKeyHex(account)
	if err != nil {
		return domain.WrapNetworkError(domain.CodeInvalidKey, "export derived key", err)
	}
	return m.ConnectByPrivateKey(ctx, key)
}

// Disconnect clears the session unconditionally and is safe to call when
// already disconnected. A provider-side disconnect failure does not keep
// the session alive.
func (m *Manager) Disconnect(ctx context.Context) {
	if m.provider != nil && m.account != nil && m.account.PrivateKey == nil {
		_ = m.provider.Disconnect(ctx)
	}
	m.address = ""
	m.privateKey = ""
	m.account = nil
}

// Balance reads an asset balance through the provider. The value is decimal
// precise; floats never appear on this path.
func (m *Manager) Balance(ctx context.Context, accountAddress, assetID string) (decimal.Decimal, error) {
	if m.provider == nil {
		return decimal.Zero, domain.NewNetworkError(domain.CodeProviderUnavailable, "no wallet provider configured")
	}
	raw, err := m.provider.Balance(ctx, accountAddress, assetID)
	if err != nil {
		return decimal.Zero, domain.WrapNetworkError(domain.CodeQueryFailed, "fetch balance", err)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.WrapNetworkError(domain.CodeQueryFailed, "parse balance "+raw, err)
	}
	return v, nil
}

// AddAsset asks the provider to register the asset for display. Failures
// are returned but never touch the session.
func (m *Manager) AddAsset(ctx context.Context, assetID string) error {
	if m.provider == nil {
		return domain.NewNetworkError(domain.CodeProviderUnavailable, "no wallet provider configured")
	}
	return m.provider.AddAsset(ctx, assetID)
}

// Address returns the connected address, or "" when disconnected.
func (m *Manager) Address() string {
	return m.address
}

// PrivateKey returns the imported key, or "" for provider sessions.
func (m *Manager) PrivateKey() string {
	return m.privateKey
}

// Account returns the signing handle for the SDK, nil when disconnected.
func (m *Manager) Account() *Account {
	return m.account
}
