package assets

import (
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/sparkfi/sparkgo/internal/domain"
)

//go:embed tokens.json
var tokensJSON []byte

// tokenRecord is the raw shape of one tokens.json entry.
type tokenRecord struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Decimals  int    `json:"decimals"`
	AssetID   string `json:"assetId"`
	PriceFeed string `json:"priceFeed"`
}

// logos maps symbols to bundled logo asset names.
var logos = map[string]string{
	"ETH":  "eth.svg",
	"BTC":  "btc.svg",
	"USDC": "usdc.svg",
	"UNI":  "uni.svg",
}

// LoadTokens parses the embedded token metadata into domain tokens.
func LoadTokens() ([]domain.Token, error) {
	var raw map[string]tokenRecord
	if err := json.Unmarshal(tokensJSON, &raw); err != nil {
		return nil, errors.Wrap(err, "assets: parse tokens.json")
	}
	// Stable order: keep the well-known symbols first, anything else after.
	order := []string{"ETH", "BTC", "USDC", "UNI"}
	seen := make(map[string]bool, len(order))
	tokens := make([]domain.Token, 0, len(raw))
	appendToken := func(rec tokenRecord) {
		tokens = append(tokens, domain.Token{
			Name:      rec.Name,
			Symbol:    rec.Symbol,
			Decimals:  rec.Decimals,
			AssetID:   rec.AssetID,
			Logo:      logos[rec.Symbol],
			PriceFeed: rec.PriceFeed,
		})
	}
	for _, sym := range order {
		if rec, ok := raw[sym]; ok {
			appendToken(rec)
			seen[sym] = true
		}
	}
	for sym, rec := range raw {
		if !seen[sym] {
			appendToken(rec)
		}
	}
	return tokens, nil
}

// DefaultRegistry builds the registry from the embedded metadata.
func DefaultRegistry() (*Registry, error) {
	tokens, err := LoadTokens()
	if err != nil {
		return nil, err
	}
	return NewRegistry(tokens)
}
