// Package assets holds the immutable token registry. It is built once at
// startup from static metadata and shared freely afterwards.
package assets

import (
	"fmt"
	"strings"

	"github.com/sparkfi/sparkgo/internal/domain"
)

// Registry resolves tokens by symbol or by asset id. Asset id keys are
// normalized to lowercase, so lookups match any casing. A Registry is
// read-only after construction and safe for concurrent use.
type Registry struct {
	list      []domain.Token
	bySymbol  map[string]domain.Token
	byAssetID map[string]domain.Token
}

// NewRegistry builds a registry from token records. Duplicate symbols or
// asset ids (case-normalized) are construction errors, not lookup surprises.
func NewRegistry(tokens []domain.Token) (*Registry, error) {
	r := &Registry{
		list:      make([]domain.Token, 0, len(tokens)),
		bySymbol:  make(map[string]domain.Token, len(tokens)),
		byAssetID: make(map[string]domain.Token, len(tokens)),
	}
	for _, t := range tokens {
		if _, ok := r.bySymbol[t.Symbol]; ok {
			return nil, fmt.Errorf("assets: duplicate symbol %q", t.Symbol)
		}
		key := t.NormalizedAssetID()
		if _, ok := r.byAssetID[key]; ok {
			return nil, fmt.Errorf("assets: duplicate asset id %q", key)
		}
		r.bySymbol[t.Symbol] = t
		r.byAssetID[key] = t
		r.list = append(r.list, t)
	}
	return r, nil
}

// List returns all tokens in registration order.
func (r *Registry) List() []domain.Token {
	out := make([]domain.Token, len(r.list))
	copy(out, r.list)
	return out
}

// BySymbol returns the token registered under symbol.
func (r *Registry) BySymbol(symbol string) (domain.Token, error) {
	t, ok := r.bySymbol[symbol]
	if !ok {
		return domain.Token{}, domain.NewNetworkError(domain.CodeNotFound, fmt.Sprintf("no token with symbol %q", symbol))
	}
	return t, nil
}

// ByAssetID returns the token registered under assetID, matched
// case-insensitively.
func (r *Registry) ByAssetID(assetID string) (domain.Token, error) {
	t, ok := r.byAssetID[strings.ToLower(assetID)]
	if !ok {
		return domain.Token{}, domain.NewNetworkError(domain.CodeNotFound, fmt.Sprintf("no token with asset id %q", assetID))
	}
	return t, nil
}
