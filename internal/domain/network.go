package domain

// Descriptor identifies one RPC/indexer endpoint for a network. Exactly one
// descriptor is current at a time per network type.
type Descriptor struct {
	Name string
	URL  string
}

// ContractAddresses are the deployed Spark contracts on one network.
type ContractAddresses struct {
	SpotMarket     string
	TokenFactory   string
	Vault          string
	AccountBalance string
	ClearingHouse  string
	PerpMarket     string
	Pyth           string
	Proxy          string
}
