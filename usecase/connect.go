package usecase

import (
	"context"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"poster/domain"
	"poster/interface/exporter"
)

// SessionInteractor owns the wallet connection lifecycle and the required-network check.
type SessionInteractor struct {
	wallet         WalletProvider
	binder         Binder
	network        domain.NetworkParams
	gateInteractor *GateInteractor
	feedInteractor *FeedInteractor
}

func NewSessionInteractor(wallet WalletProvider,
	binder Binder,
	network domain.NetworkParams,
	gateInteractor *GateInteractor,
	feedInteractor *FeedInteractor) *SessionInteractor {
	interactor := &SessionInteractor{
		wallet:         wallet,
		binder:         binder,
		network:        network,
		gateInteractor: gateInteractor,
		feedInteractor: feedInteractor,
	}
	return interactor
}

// CheckNetwork reports whether the wallet is on the required network.
func (interactor *SessionInteractor) CheckNetwork(ctx context.Context) (bool, *big.Int, error) {
	if interactor.wallet == nil {
		return false, nil, domain.ErrorNoWallet
	}

	chainId, err := interactor.wallet.ChainID(ctx)
	if err != nil {
		return false, nil, err
	}
	return interactor.network.Matches(chainId), chainId, nil
}

// SwitchNetwork asks the wallet to move to the required network, adding the network
// definition when the wallet does not know it.
func (interactor *SessionInteractor) SwitchNetwork(ctx context.Context) error {
	if interactor.wallet == nil {
		return domain.ErrorNoWallet
	}

	err := interactor.wallet.SwitchChain(ctx, interactor.network.ChainId)
	if domain.IsUnrecognizedChain(err) {
		log.Printf("🟡 wallet does not know %v, adding it\n", interactor.network.ChainIdHex())
		err = interactor.wallet.AddChain(ctx, interactor.network)
	}
	if err != nil {
		if domain.IsUserRejected(err) {
			log.Printf("🟡 network switch rejected by user\n")
		} else {
			exporter.IncErrorCount()
			log.Printf("🔴 switching network - %v\n", err.Error())
		}
		return err
	}
	return nil
}

// Connect establishes a session on the required network, switching first when needed, and
// subscribes it to wallet notifications. Nothing is kept when it fails.
func (interactor *SessionInteractor) Connect(ctx context.Context) (*Session, error) {
	correct, _, err := interactor.CheckNetwork(ctx)
	if err != nil {
		return nil, err
	}

	if !correct {
		if err = interactor.SwitchNetwork(ctx); err != nil {
			return nil, err
		}
		correct, _, err = interactor.CheckNetwork(ctx)
		if err != nil {
			return nil, err
		}
		if !correct {
			return nil, domain.ErrorWrongNetwork
		}
	}

	session := newSession(ctx, interactor.wallet)
	if err = interactor.initialize(ctx, session); err != nil {
		return nil, err
	}

	session.unsubscribe = interactor.wallet.Subscribe(domain.WalletListener{
		OnAccountsChanged: func(accounts []common.Address) {
			interactor.onAccountsChanged(session, accounts)
		},
		OnChainChanged: func(chainId *big.Int) {
			interactor.onChainChanged(session, chainId)
		},
	})

	return session, nil
}

// Reload discards every handle and derived value and rebuilds the session from the wallet.
func (interactor *SessionInteractor) Reload(ctx context.Context, session *Session) error {
	session.clear()
	session.countReload()
	return interactor.initialize(ctx, session)
}

func (interactor *SessionInteractor) Close(session *Session) {
	if session.unsubscribe != nil {
		session.unsubscribe()
		session.unsubscribe = nil
	}
	session.clear()
}

func (interactor *SessionInteractor) initialize(ctx context.Context, session *Session) error {
	accounts, err := interactor.wallet.RequestAccounts(ctx)
	if err != nil {
		if !domain.IsUserRejected(err) {
			exporter.IncErrorCount()
		}
		log.Printf("🔴 requesting accounts - %v\n", err.Error())
		return err
	}
	if len(accounts) == 0 {
		return domain.ErrorNoAccounts
	}

	chainId, err := interactor.wallet.ChainID(ctx)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 reading chain id - %v\n", err.Error())
		return err
	}

	poster, token := interactor.binder.Bind(interactor.wallet.Backend())
	session.setup(accounts[0], chainId, interactor.network.Matches(chainId), poster, token)

	// Feed and gate failures leave the session usable; they are retried on refresh.
	if _, err := interactor.feedInteractor.Load(ctx, session); err != nil {
		log.Printf("🟡 initial post load failed - %v\n", err.Error())
	}
	if _, err := interactor.gateInteractor.Check(ctx, session); err != nil {
		log.Printf("🟡 initial balance check failed - %v\n", err.Error())
	}

	return nil
}

func (interactor *SessionInteractor) onAccountsChanged(session *Session, accounts []common.Address) {
	if len(accounts) == 0 {
		log.Printf("wallet disconnected the account\n")
		session.disconnectAccount()
		return
	}

	if session.setAccount(accounts[0]) {
		log.Printf("account changed to %v\n", accounts[0].Hex())
		if _, err := interactor.gateInteractor.Check(session.ctx, session); err != nil {
			log.Printf("🟡 balance check after account change failed - %v\n", err.Error())
		}
	}
}

func (interactor *SessionInteractor) onChainChanged(session *Session, chainId *big.Int) {
	correct := interactor.network.Matches(chainId)
	session.setNetwork(chainId, correct)
	if !correct {
		log.Printf("❗️ wallet moved to chain %v, required %v\n", chainId, interactor.network.ChainId)
		return
	}

	log.Printf("wallet is back on the required network, reinitializing session\n")
	if err := interactor.Reload(session.ctx, session); err != nil {
		log.Printf("🔴 reinitializing session - %v\n", err.Error())
	}
}
