package sdk

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/sparkfi/sparkgo/internal/wallet"
)

func TestSignedHeadersProviderSession(t *testing.T) {
	headers, err := signedHeaders(&wallet.Account{Address: "0xaddr"}, map[string]string{"a": "1"})
	require.NoError(t, err)

	require.Equal(t, "0xaddr", headers[headerTrader])
	require.NotEmpty(t, headers[headerTimestamp])
	// Provider sessions have no local key; the gateway verifies the session
	// itself, so no signature is sent.
	require.NotContains(t, headers, headerSignature)
}

func TestSignedHeadersKeySession(t *testing.T) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := &wallet.Account{
		Address:    crypto.PubkeyToAddress(pk.PublicKey).Hex(),
		PrivateKey: pk,
	}

	body := map[string]string{"baseToken": "0xbtc", "size": "1"}
	headers, err := signedHeaders(account, body)
	require.NoError(t, err)

	sigHex := headers[headerSignature]
	require.True(t, strings.HasPrefix(sigHex, "0x"))
	sig, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	require.NoError(t, err)
	require.Len(t, sig, 65)

	// The signature must recover to the session key over
	// keccak256(body || timestamp).
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	digest := crypto.Keccak256(payload, []byte(headers[headerTimestamp]))
	recovered, err := crypto.SigToPub(digest, sig)
	require.NoError(t, err)
	require.Equal(t, account.Address, crypto.PubkeyToAddress(*recovered).Hex())
}
