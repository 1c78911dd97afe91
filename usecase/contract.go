package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
	"poster/interface/contract"
)

type PosterHandle interface {
	Address() common.Address
	Threshold(ctx context.Context) (*big.Int, error)
	TokenAddress(ctx context.Context) (common.Address, error)
	Owner(ctx context.Context) (common.Address, error)
	EstimatePost(ctx context.Context, from common.Address, content, tag string) (uint64, error)
	Post(opts *bind.TransactOpts, content, tag string) (*types.Receipt, error)
	NewPosts(ctx context.Context, fromBlock uint64, toBlock *uint64) ([]domain.Post, error)
}

type TokenHandle interface {
	Address() common.Address
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
	Name(ctx context.Context) (string, error)
	Symbol(ctx context.Context) (string, error)
}

type Binder interface {
	Bind(backend contract.Backend) (PosterHandle, TokenHandle)
}

// ContractInteractor binds the fixed Poster and token addresses to whatever backend the
// wallet is attached to.
type ContractInteractor struct {
	posterAddress common.Address
	tokenAddress  common.Address
}

func NewContractInteractor(posterAddress, tokenAddress common.Address) *ContractInteractor {
	return &ContractInteractor{
		posterAddress: posterAddress,
		tokenAddress:  tokenAddress,
	}
}

func (interactor *ContractInteractor) Bind(backend contract.Backend) (PosterHandle, TokenHandle) {
	return contract.NewPoster(interactor.posterAddress, backend), contract.NewToken(interactor.tokenAddress, backend)
}

func (interactor *ContractInteractor) TokenAddress() common.Address {
	return interactor.tokenAddress
}
