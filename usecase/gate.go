package usecase

import (
	"context"
	"log"

	"github.com/ethereum/go-ethereum/common"

	"poster/domain"
	"poster/interface/exporter"
)

// GateInteractor decides whether the session's account may post. The decision is advisory,
// the Poster contract enforces the threshold again when the transaction executes.
type GateInteractor struct {
	tokenAddress common.Address
}

func NewGateInteractor(tokenAddress common.Address) *GateInteractor {
	return &GateInteractor{
		tokenAddress: tokenAddress,
	}
}

func (interactor *GateInteractor) Check(ctx context.Context, session *Session) (domain.BalanceSnapshot, error) {
	poster, token, account, err := session.handles()
	if err != nil {
		return domain.EmptySnapshot(), err
	}
	if !session.IsCorrectNetwork() {
		return session.Snapshot(), domain.ErrorWrongNetwork
	}

	session.setChecking(true)
	defer session.setChecking(false)

	exporter.IncGateCheckCount()

	balance, err := token.BalanceOf(ctx, account)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 checking token balance - %v\n", err.Error())
		return session.Snapshot(), err
	}

	threshold, err := poster.Threshold(ctx)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 reading posting threshold - %v\n", err.Error())
		return session.Snapshot(), err
	}

	posterToken, err := poster.TokenAddress(ctx)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 reading poster token address - %v\n", err.Error())
		return session.Snapshot(), err
	}

	decimals, err := token.Decimals(ctx)
	if err != nil {
		log.Printf("🟡 reading token decimals, assuming %v - %v\n", domain.DefaultDecimals, err.Error())
		decimals = domain.DefaultDecimals
	}

	if posterToken != interactor.tokenAddress {
		exporter.IncTokenMismatchCount()
		log.Printf("❗️ token address mismatch: poster checks %v, client assumes %v\n", posterToken.Hex(), interactor.tokenAddress.Hex())
	}

	snapshot := domain.NewBalanceSnapshot(balance, threshold, decimals)
	if !session.setSnapshot(account, snapshot) {
		log.Printf("🟡 account changed during balance check, result dropped\n")
		return session.Snapshot(), nil
	}

	log.Printf("balance check [account: %v] balance=%v threshold=%v passes=%v\n", account.Hex(), balance, threshold, snapshot.MeetsThreshold())
	return snapshot, nil
}
