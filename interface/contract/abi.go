package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
)

const PosterABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[
		{"name":"_tokenAddress","type":"address"},
		{"name":"_threshold","type":"uint256"}]},
	{"type":"function","name":"threshold","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"tokenAddress","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"post","stateMutability":"nonpayable","inputs":[
		{"name":"content","type":"string"},
		{"name":"tag","type":"string"}],"outputs":[]},
	{"type":"function","name":"transferOwnership","stateMutability":"nonpayable","inputs":[
		{"name":"newOwner","type":"address"}],"outputs":[]},
	{"type":"event","name":"NewPost","anonymous":false,"inputs":[
		{"name":"user","type":"address","indexed":true},
		{"name":"content","type":"string","indexed":false},
		{"name":"tag","type":"string","indexed":true}]}
]`

const TokenABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	posterABI = mustParseABI(PosterABI)
	tokenABI  = mustParseABI(TokenABI)
)

// Backend is everything a handle needs from a node: calls, transactions, logs and receipts.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// call runs a view method with a single return value.
func call[T any](ctx context.Context, c *bind.BoundContract, method string, params ...interface{}) (T, error) {
	var zero T
	var out []interface{}

	err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	if err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, fmt.Errorf("%v returned no value", method)
	}

	res, ok := abi.ConvertType(out[0], new(T)).(*T)
	if !ok {
		return zero, fmt.Errorf("%v returned unexpected type %T", method, out[0])
	}
	return *res, nil
}

// waitSuccessful blocks until tx is mined and fails when it reverted.
func waitSuccessful(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %v: %w", tx.Hash().Hex(), domain.ErrorTransactionReverted)
	}
	return receipt, nil
}
