package contract

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
)

const (
	EventNewPost = "NewPost"
)

type Poster struct {
	address  common.Address
	backend  Backend
	contract *bind.BoundContract
}

type newPostEvent struct {
	User    common.Address
	Content string
	Tag     common.Hash
}

func NewPoster(address common.Address, backend Backend) *Poster {
	return &Poster{
		address:  address,
		backend:  backend,
		contract: bind.NewBoundContract(address, posterABI, backend, backend, backend),
	}
}

func (p *Poster) Address() common.Address {
	return p.address
}

func (p *Poster) Threshold(ctx context.Context) (*big.Int, error) {
	return call[*big.Int](ctx, p.contract, "threshold")
}

func (p *Poster) TokenAddress(ctx context.Context) (common.Address, error) {
	return call[common.Address](ctx, p.contract, "tokenAddress")
}

func (p *Poster) Owner(ctx context.Context) (common.Address, error) {
	return call[common.Address](ctx, p.contract, "owner")
}

func (p *Poster) EstimatePost(ctx context.Context, from common.Address, content, tag string) (uint64, error) {
	input, err := posterABI.Pack("post", content, tag)
	if err != nil {
		return 0, err
	}

	return p.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &p.address,
		Data: input,
	})
}

// Post sends the post transaction with the gas limit already set on opts and waits for it.
func (p *Poster) Post(opts *bind.TransactOpts, content, tag string) (*types.Receipt, error) {
	tx, err := p.contract.Transact(opts, "post", content, tag)
	if err != nil {
		return nil, err
	}
	return waitSuccessful(opts.Context, p.backend, tx)
}

func (p *Poster) TransferOwnership(opts *bind.TransactOpts, newOwner common.Address) (*types.Receipt, error) {
	tx, err := p.contract.Transact(opts, "transferOwnership", newOwner)
	if err != nil {
		return nil, err
	}
	return waitSuccessful(opts.Context, p.backend, tx)
}

// NewPosts replays every NewPost event in [fromBlock, toBlock]; a nil toBlock means latest.
// Posts come back in emission order.
func (p *Poster) NewPosts(ctx context.Context, fromBlock uint64, toBlock *uint64) ([]domain.Post, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{p.address},
		Topics:    [][]common.Hash{{posterABI.Events[EventNewPost].ID}},
	}
	if toBlock != nil {
		query.ToBlock = new(big.Int).SetUint64(*toBlock)
	}

	logs, err := p.backend.FilterLogs(ctx, query)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		post, err := p.unpackPost(l)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (p *Poster) unpackPost(l types.Log) (domain.Post, error) {
	var ev newPostEvent
	if err := p.contract.UnpackLog(&ev, EventNewPost, l); err != nil {
		return domain.Post{}, err
	}

	return domain.Post{
		User:        ev.User,
		Content:     ev.Content,
		Tag:         ev.Tag,
		TxHash:      l.TxHash,
		BlockNumber: l.BlockNumber,
		LogIndex:    l.Index,
	}, nil
}
