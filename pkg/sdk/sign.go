package sdk

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/sparkfi/sparkgo/internal/wallet"
)

// Gateway auth headers. Transactions are authorized by signing
// keccak256(body || timestamp) with the session key; provider-backed
// sessions send the address only and the gateway verifies against the
// provider session it issued.
const (
	headerTrader    = "X-Spark-Trader"
	headerTimestamp = "X-Spark-Timestamp"
	headerSignature = "X-Spark-Signature"
)

func signedHeaders(account *wallet.Account, body any) (map[string]string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	headers := map[string]string{
		headerTrader:    account.Address,
		headerTimestamp: ts,
	}
	if account.PrivateKey == nil {
		return headers, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request for signing")
	}
	digest := crypto.Keccak256(payload, []byte(ts))
	sig, err := crypto.Sign(digest, account.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "sign request")
	}
	headers[headerSignature] = "0x" + hex.EncodeToString(sig)
	return headers, nil
}
