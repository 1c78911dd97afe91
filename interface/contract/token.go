package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Token is the read-only part of an ERC-20 the client needs.
type Token struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewToken(address common.Address, backend Backend) *Token {
	return &Token{
		address:  address,
		contract: bind.NewBoundContract(address, tokenABI, backend, backend, backend),
	}
}

func (t *Token) Address() common.Address {
	return t.address
}

func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return call[*big.Int](ctx, t.contract, "balanceOf", owner)
}

func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	return call[uint8](ctx, t.contract, "decimals")
}

func (t *Token) Name(ctx context.Context) (string, error) {
	return call[string](ctx, t.contract, "name")
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return call[string](ctx, t.contract, "symbol")
}
