package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures crossing the network boundary. The account
// controller keys its recovery behavior off these codes; everything it does
// not recognize is treated as a generic failure.
type ErrorCode string

const (
	// CodeNotFound: token lookup by symbol or asset id had no match.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeNoActiveWallet: a wallet-requiring operation ran with no session.
	CodeNoActiveWallet ErrorCode = "NO_ACTIVE_WALLET"
	// CodeProviderRejected: the wallet provider refused the connection.
	CodeProviderRejected ErrorCode = "PROVIDER_REJECTED"
	// CodeUnknownAccount: the provider has no authorized account selected.
	CodeUnknownAccount ErrorCode = "UNKNOWN_ACCOUNT"
	// CodeProviderUnavailable: no wallet provider is reachable.
	CodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// CodeInvalidKey: private key or mnemonic derivation failed.
	CodeInvalidKey ErrorCode = "INVALID_KEY"
	// CodeQueryFailed: a provider/indexer read failed.
	CodeQueryFailed ErrorCode = "QUERY_FAILED"
)

// NetworkError is the classified error type shared by the wallet manager,
// the network adapters and the account controller.
type NetworkError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// NewNetworkError builds a classified error without a cause.
func NewNetworkError(code ErrorCode, message string) *NetworkError {
	return &NetworkError{Code: code, Message: message}
}

// WrapNetworkError attaches a classification to an underlying failure.
func WrapNetworkError(code ErrorCode, message string, cause error) *NetworkError {
	return &NetworkError{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err carries the given classification anywhere in
// its chain.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the classification of err, or "" for unclassified errors.
func CodeOf(err error) ErrorCode {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Code
	}
	return ""
}
