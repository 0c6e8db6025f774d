package sdk

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSpotOrderToDomain(t *testing.T) {
	in := spotOrderJSON{
		ID:           "o1",
		Trader:       "0xme",
		BaseAssetID:  "0xbtc",
		QuoteAssetID: "0xusdc",
		Type:         "SELL",
		Size:         "0.00000001",
		Price:        "65000.123456",
		Timestamp:    1700000000,
	}

	got, err := in.toDomain()
	if err != nil {
		t.Fatalf("toDomain() error: %v", err)
	}
	// Indexer numerics are decimal strings; the exact value must survive.
	if got.Size.String() != "0.00000001" {
		t.Errorf("Size = %s, want 0.00000001", got.Size.String())
	}
	if got.Price.String() != "65000.123456" {
		t.Errorf("Price = %s, want 65000.123456", got.Price.String())
	}
	if got.Timestamp.Unix() != 1700000000 {
		t.Errorf("Timestamp = %v", got.Timestamp)
	}

	in.Size = "50,000"
	if _, err := in.toDomain(); err == nil {
		t.Error("malformed size must fail, not round")
	}
}

func TestParseOptionalDecimal(t *testing.T) {
	v, err := parseOptionalDecimal("")
	if err != nil {
		t.Fatalf("empty string: %v", err)
	}
	if !v.Equal(decimal.Zero) {
		t.Errorf("empty string = %s, want 0", v.String())
	}

	v, err = parseOptionalDecimal("12.5")
	if err != nil {
		t.Fatalf("parseOptionalDecimal(12.5): %v", err)
	}
	if v.String() != "12.5" {
		t.Errorf("got %s, want 12.5", v.String())
	}

	if _, err := parseOptionalDecimal("junk"); err == nil {
		t.Error("junk must fail")
	}
}
