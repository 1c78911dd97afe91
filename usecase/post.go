package usecase

import (
	"context"
	"log"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
	"poster/interface/exporter"
)

type PostInteractor struct {
	gateInteractor *GateInteractor
	feedInteractor *FeedInteractor
}

func NewPostInteractor(gateInteractor *GateInteractor, feedInteractor *FeedInteractor) *PostInteractor {
	interactor := &PostInteractor{
		gateInteractor: gateInteractor,
		feedInteractor: feedInteractor,
	}
	return interactor
}

// Submit sends one post when the session's gate passes. Failures are final for this
// attempt and come back as *domain.PostError once a transaction was attempted.
func (interactor *PostInteractor) Submit(ctx context.Context, session *Session, content, tag string) (*types.Receipt, error) {
	poster, _, account, err := session.handles()
	if err != nil {
		return nil, err
	}
	if !session.IsCorrectNetwork() {
		return nil, domain.ErrorWrongNetwork
	}
	if content == "" || tag == "" {
		return nil, domain.ErrorEmptyField
	}

	snapshot := session.Snapshot()
	if snapshot.IsEmpty() {
		return nil, domain.ErrorBalanceUnknown
	}
	if !snapshot.MeetsThreshold() {
		return nil, &domain.InsufficientTokensError{
			Balance:   snapshot.Balance,
			Threshold: snapshot.Threshold,
			Decimals:  snapshot.Decimals,
		}
	}

	if !session.beginPosting() {
		return nil, domain.ErrorOperationInProgress
	}
	defer session.endPosting()

	receipt, err := interactor.send(ctx, session, poster, account, content, tag)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 posting [account: %v] - %v\n", account.Hex(), err.Error())
		return nil, domain.ClassifyPostError(err)
	}

	exporter.IncPostCount()
	log.Printf("post sent [tx: %v, block: %v]\n", receipt.TxHash.Hex(), receipt.BlockNumber)

	if _, err := interactor.feedInteractor.Load(ctx, session); err != nil {
		log.Printf("🟡 reloading posts after submission - %v\n", err.Error())
	}
	if _, err := interactor.gateInteractor.Check(ctx, session); err != nil {
		log.Printf("🟡 rechecking balance after submission - %v\n", err.Error())
	}

	return receipt, nil
}

func (interactor *PostInteractor) send(ctx context.Context, session *Session, poster PosterHandle, account common.Address, content, tag string) (*types.Receipt, error) {
	estimate, err := poster.EstimatePost(ctx, account, content, tag)
	if err != nil {
		return nil, err
	}

	gasLimit, err := domain.GasWithMargin(estimate)
	if err != nil {
		return nil, err
	}
	log.Printf("gas estimate: %v, gas limit: %v\n", estimate, gasLimit)

	opts, err := session.wallet.Transactor(ctx)
	if err != nil {
		return nil, err
	}
	opts.GasLimit = gasLimit

	return poster.Post(opts, content, tag)
}
