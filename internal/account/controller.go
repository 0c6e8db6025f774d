// Package account drives the wallet lifecycle over whatever network is
// currently active: connect flows, failure classification, user notices
// and session snapshots. It is the only layer that catches errors coming
// up from the adapters; everything below lets them propagate.
package account

import (
	"context"
	"sync"

	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/internal/network"
	"github.com/sparkfi/sparkgo/pkg/logger"
	"github.com/sparkfi/sparkgo/pkg/sigchan"
)

// Snapshot is the persistable projection of the session. Empty strings are
// the explicit "absent" marker, so a snapshot always round-trips through
// JSON untouched.
type Snapshot struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

// SessionState is what change subscribers observe.
type SessionState struct {
	NetworkType network.Type
	Address     string
	Connected   bool
}

// User-facing notice texts.
const (
	noticeAuthorizeWallet = "Please authorize the wallet account when connecting."
	noticeUnexpected      = "Unexpected error. Please try again."
)

// Controller is the account lifecycle state machine. All methods are meant
// to be driven by a single caller (the UI loop); the controller adds no
// locking around the session itself.
type Controller struct {
	networks map[network.Type]network.BlockchainNetwork
	current  network.Type
	notifier Notifier

	initialized bool

	changed     *sigchan.Chan
	subMu       sync.Mutex
	subscribers []func(SessionState)
}

// Options configure a Controller. Networks must contain Current.
type Options struct {
	Networks map[network.Type]network.BlockchainNetwork
	Current  network.Type
	Notifier Notifier
}

// NewController builds the controller and, when a prior snapshot is given,
// makes a best-effort attempt to restore its session: a stored key
// reconnects directly; an address-only snapshot re-triggers the provider
// flow, but only on Fuel, the one network whose provider supports silent
// reconnection. Restore failure leaves the session disconnected and is
// not fatal — the controller still comes up ready.
func NewController(ctx context.Context, opts Options, prior *Snapshot) (*Controller, error) {
	if _, ok := opts.Networks[opts.Current]; !ok {
		return nil, domain.NewNetworkError(domain.CodeNotFound, "no adapter for network type "+string(opts.Current))
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}
	c := &Controller{
		networks: opts.Networks,
		current:  opts.Current,
		notifier: notifier,
		changed:  sigchan.New(1),
	}

	if prior != nil {
		switch {
		case prior.PrivateKey != "":
			if err := c.ConnectWalletByPrivateKey(ctx, prior.PrivateKey); err != nil {
				logger.Warnf("[account] session restore by key failed: %v", err)
			}
		case prior.Address != "" && c.current == network.TypeFuel:
			if err := c.ConnectWallet(ctx, c.current); err != nil {
				logger.Warnf("[account] session restore via provider failed: %v", err)
			}
		}
	}

	c.initialized = true
	return c, nil
}

// Initialized reports whether construction (including any restore attempt)
// has finished.
func (c *Controller) Initialized() bool {
	return c.initialized
}

// CurrentNetwork returns the adapter subsequent calls route to.
func (c *Controller) CurrentNetwork() network.BlockchainNetwork {
	return c.networks[c.current]
}

// connectTo selects the adapter for networkType and makes it current.
func (c *Controller) connectTo(networkType network.Type) (network.BlockchainNetwork, error) {
	adapter, ok := c.networks[networkType]
	if !ok {
		return nil, domain.NewNetworkError(domain.CodeNotFound, "no adapter for network type "+string(networkType))
	}
	c.current = networkType
	return adapter, nil
}

// ConnectWallet runs the provider connect flow on networkType.
//
// Rejection-class failures (the user has not authorized an account) are
// recoverable: one informational notice, session stays disconnected, no
// cleanup. Anything else gets one generic error notice followed by a
// best-effort disconnect; a failure of that cleanup is swallowed so it can
// never mask the original error.
func (c *Controller) ConnectWallet(ctx context.Context, networkType network.Type) error {
	adapter, err := c.connectTo(networkType)
	if err != nil {
		c.notifier.Notify(noticeUnexpected, SeverityError)
		return err
	}

	err = adapter.ConnectWallet(ctx)
	if err == nil {
		c.emitChange()
		return nil
	}
	logger.Errorf("[account] wallet connect failed: %v", err)

	switch domain.CodeOf(err) {
	case domain.CodeUnknownAccount, domain.CodeProviderRejected:
		c.notifier.Notify(noticeAuthorizeWallet, SeverityInfo)
		return err
	}

	c.notifier.Notify(noticeUnexpected, SeverityError)
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Warnf("[account] cleanup disconnect panicked: %v", r)
			}
		}()
		if cleanupErr := adapter.DisconnectWallet(ctx); cleanupErr != nil {
			logger.Warnf("[account] cleanup disconnect failed: %v", cleanupErr)
		}
	}()
	return err
}

// ConnectWalletByPrivateKey imports a key on the current network. There is
// no external session to clean up, so failure only produces the generic
// notice.
func (c *Controller) ConnectWalletByPrivateKey(ctx context.Context, privateKey string) error {
	adapter := c.CurrentNetwork()
	if err := adapter.ConnectWalletByPrivateKey(ctx, privateKey); err != nil {
		logger.Errorf("[account] key import failed: %v", err)
		c.notifier.Notify(noticeUnexpected, SeverityError)
		return err
	}
	c.emitChange()
	return nil
}

// ConnectWalletByMnemonic imports the default account of a mnemonic on the
// current network.
func (c *Controller) ConnectWalletByMnemonic(ctx context.Context, mnemonic string) error {
	adapter := c.CurrentNetwork()
	if err := adapter.ConnectWalletByMnemonic(ctx, mnemonic); err != nil {
		logger.Errorf("[account] mnemonic import failed: %v", err)
		c.notifier.Notify(noticeUnexpected, SeverityError)
		return err
	}
	c.emitChange()
	return nil
}

// AddAsset asks the wallet to register an asset for display. Errors are
// surfaced verbatim and never touch the session.
func (c *Controller) AddAsset(ctx context.Context, assetID string) error {
	if err := c.CurrentNetwork().AddAssetToWallet(ctx, assetID); err != nil {
		c.notifier.Notify(err.Error(), SeverityError)
		return err
	}
	return nil
}

// Disconnect closes the session. From the caller's point of view it always
// succeeds.
func (c *Controller) Disconnect(ctx context.Context) {
	if err := c.CurrentNetwork().DisconnectWallet(ctx); err != nil {
		logger.Warnf("[account] disconnect failed: %v", err)
	}
	c.emitChange()
}

// Address is the connected address of the current network, "" when
// disconnected.
func (c *Controller) Address() string {
	return c.CurrentNetwork().Address()
}

// IsConnected reports whether a session is active on the current network.
func (c *Controller) IsConnected() bool {
	return c.Address() != ""
}

// Serialize projects the session into its persistable form. Disconnected
// sessions serialize to empty markers; this never fails.
func (c *Controller) Serialize() Snapshot {
	adapter := c.CurrentNetwork()
	return Snapshot{
		PrivateKey: adapter.PrivateKey(),
		Address:    adapter.Address(),
	}
}

// Subscribe registers fn for session-state changes. Callbacks run on the
// mutating goroutine, synchronously.
func (c *Controller) Subscribe(fn func(SessionState)) {
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.subMu.Unlock()
}

// Changed signals once per state change, for select loops that prefer a
// channel over a callback.
func (c *Controller) Changed() <-chan struct{} {
	return c.changed.C()
}

func (c *Controller) emitChange() {
	state := SessionState{
		NetworkType: c.current,
		Address:     c.Address(),
		Connected:   c.IsConnected(),
	}
	c.subMu.Lock()
	subs := make([]func(SessionState), len(c.subscribers))
	copy(subs, c.subscribers)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
	c.changed.Emit()
}
