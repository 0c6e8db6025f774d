package network

import (
	"github.com/sparkfi/sparkgo/internal/domain"
)

// Fuel beta-5 deployment.
var (
	FuelNetworks = []domain.Descriptor{
		{Name: "Fuel", URL: "https://beta-5.fuel.network/graphql"},
	}

	FuelExplorerURL = "https://app.fuel.network"

	FuelIndexerURL = "https://orderbook-indexer.spark-defi.com"

	FuelContracts = domain.ContractAddresses{
		SpotMarket:     "0x7134802bdefd097f1c9d8ad86ef27081ae609b84de0afc87b58bd4e04afc6a23",
		TokenFactory:   "0x6bd9643c9279204b474a778dea7f923226060cb94a4c61c5aae015cf96b5aad2",
		Vault:          "0xe8beef1c4c94e8732b89c5e783c80e9fb7f80fd43ad0c594ba380e4b5556106a",
		AccountBalance: "0xa842702d600b43a3c7be0e36a0e08452b3d6fc36f0d4015fb6a06cb056cd312d",
		ClearingHouse:  "0xa4801149d4faa6e8421f130708bcd228780353241e2b35697e4e08d0b3672b20",
		PerpMarket:     "0xd628033650475290e0e8696266d0a0318364ff9c980f9ee5f4a4bb56ee85664a",
		Pyth:           "0x3cd5005f23321c8ae0ccfa98fb07d9a5ff325c483f21d2d9540d6897007600c9",
		Proxy:          "0x24c43c6cb3f0898ab46142fefa94a77414d7a6bb2619c41cd8725b161ac50c9d",
	}

	// FaucetAmounts is the per-symbol mint size used by MintToken on testnet.
	FaucetAmounts = map[string]string{
		"ETH":  "0.5",
		"BTC":  "0.01",
		"USDC": "3000",
		"UNI":  "50",
	}
)
