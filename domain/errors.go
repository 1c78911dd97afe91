package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"poster/domain/util"
)

var (
	ErrorNoWallet            = fmt.Errorf("no wallet provider is available")
	ErrorNoAccounts          = fmt.Errorf("wallet returned no accounts")
	ErrorWrongNetwork        = fmt.Errorf("wallet is not on the required network")
	ErrorNotConnected        = fmt.Errorf("session is not connected")
	ErrorEmptyField          = fmt.Errorf("content and tag must both be filled")
	ErrorOperationInProgress = fmt.Errorf("another operation is in progress")
	ErrorBalanceUnknown      = fmt.Errorf("token balance or posting threshold could not be read")

	ErrorTransactionReverted = fmt.Errorf("execution reverted")
	ErrorNumericOverflow     = fmt.Errorf("numeric overflow")
)

// Wallet provider error codes, as defined by EIP-1193 and the add-chain extension.
const (
	CodeUserRejected      = 4001
	CodeUnrecognizedChain = 4902
	CodeInvalidParams     = -32602
)

type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

func IsUserRejected(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeUserRejected
}

func IsUnrecognizedChain(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeUnrecognizedChain
}

type InsufficientTokensError struct {
	Balance   *big.Int
	Threshold *big.Int
	Decimals  uint8
}

func (e *InsufficientTokensError) Error() string {
	return fmt.Sprintf("insufficient tokens: you need at least %v tokens, but you have %v",
		util.FormatTokens(e.Threshold, e.Decimals), util.FormatTokens(e.Balance, e.Decimals))
}

type PostErrorKind int

const (
	PostErrorRaw PostErrorKind = iota
	PostErrorReverted
	PostErrorSystem
)

// PostError is a failed submission as shown to the user. The contract re-checks the
// threshold at execution time, so a revert is reported as balance related.
type PostError struct {
	Kind PostErrorKind
	Err  error
}

func (e *PostError) Error() string {
	switch e.Kind {
	case PostErrorReverted:
		return "Transaction failed. Check your token balance."
	case PostErrorSystem:
		return "System error. Please try again."
	default:
		return "Error creating post: " + e.Err.Error()
	}
}

func (e *PostError) Unwrap() error {
	return e.Err
}

func ClassifyPostError(err error) *PostError {
	if err == nil {
		return nil
	}

	var perr *PostError
	if errors.As(err, &perr) {
		return perr
	}

	switch {
	case errors.Is(err, ErrorTransactionReverted) || strings.Contains(strings.ToLower(err.Error()), "execution reverted"):
		return &PostError{Kind: PostErrorReverted, Err: err}
	case errors.Is(err, ErrorNumericOverflow):
		return &PostError{Kind: PostErrorSystem, Err: err}
	default:
		return &PostError{Kind: PostErrorRaw, Err: err}
	}
}
