// Package stream subscribes to live trade events from the indexer
// websocket feed. Reconnects resubscribe everything that was subscribed
// before the drop.
package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/pkg/logger"
)

// TradeHandler receives every trade event for subscribed assets.
type TradeHandler func(trade domain.SpotMarketTrade)

// Config tunes connection behavior.
type Config struct {
	URL               string
	ReconnectInterval time.Duration
	PingInterval      time.Duration
}

// DefaultConfig returns the settings used against the public indexer feed.
func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		ReconnectInterval: 5 * time.Second,
		PingInterval:      30 * time.Second,
	}
}

// Client is a reconnecting trade-stream subscriber.
type Client struct {
	cfg     Config
	handler TradeHandler

	mu            sync.Mutex
	conn          *websocket.Conn
	subscriptions map[string]bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a stream client; Run must be called to connect.
func NewClient(cfg Config, handler TradeHandler) *Client {
	return &Client{
		cfg:           cfg,
		handler:       handler,
		subscriptions: make(map[string]bool),
	}
}

type subscribeMessage struct {
	Op       string   `json:"op"`
	Channel  string   `json:"channel"`
	AssetIDs []string `json:"asset_ids"`
}

type tradeMessage struct {
	Channel   string `json:"channel"`
	ID        string `json:"id"`
	AssetID   string `json:"base_token"`
	Buyer     string `json:"buyer"`
	Seller    string `json:"seller"`
	Size      string `json:"size"`
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// Subscribe adds an asset to the subscription set and, when connected,
// sends the subscribe frame immediately.
func (c *Client) Subscribe(assetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[assetID] = true
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(subscribeMessage{Op: "subscribe", Channel: "trades", AssetIDs: []string{assetID}})
}

// Run connects and processes messages until ctx is canceled, reconnecting
// on read failures.
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	defer close(c.done)

	for {
		if err := c.connectAndRead(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warnf("[stream] connection lost: %v, reconnecting in %s", err, c.cfg.ReconnectInterval)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.cfg.ReconnectInterval):
		}
	}
}

// Close stops the stream and waits for Run to return.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.done != nil {
		<-c.done
	}
}

func (c *Client) connectAndRead(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer conn.Close()

	c.mu.Lock()
	c.conn = conn
	assetIDs := make([]string, 0, len(c.subscriptions))
	for id := range c.subscriptions {
		assetIDs = append(assetIDs, id)
	}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
	}()

	if len(assetIDs) > 0 {
		if err := conn.WriteJSON(subscribeMessage{Op: "subscribe", Channel: "trades", AssetIDs: assetIDs}); err != nil {
			return errors.Wrap(err, "resubscribe")
		}
	}

	go c.pingLoop(ctx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return errors.Wrap(err, "read")
		}
		c.dispatch(data)
	}
}

func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

func (c *Client) dispatch(data []byte) {
	var msg tradeMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Channel != "trades" {
		return
	}
	size, err := decimal.NewFromString(msg.Size)
	if err != nil {
		logger.Warnf("[stream] trade %s: bad size %q", msg.ID, msg.Size)
		return
	}
	price, err := decimal.NewFromString(msg.Price)
	if err != nil {
		logger.Warnf("[stream] trade %s: bad price %q", msg.ID, msg.Price)
		return
	}
	if c.handler != nil {
		c.handler(domain.SpotMarketTrade{
			ID:          msg.ID,
			BaseAssetID: msg.AssetID,
			Buyer:       msg.Buyer,
			Seller:      msg.Seller,
			Size:        size,
			Price:       price,
			Timestamp:   time.Unix(msg.Timestamp, 0).UTC(),
		})
	}
}
