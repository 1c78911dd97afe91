package usecase

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"poster/domain"
	"poster/interface/contract"
)

// WalletProvider is the wallet boundary: accounts, network selection, signing and change
// notifications.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (*big.Int, error)
	SwitchChain(ctx context.Context, chainId *big.Int) error
	AddChain(ctx context.Context, params domain.NetworkParams) error
	Backend() contract.Backend
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
	Subscribe(l domain.WalletListener) func()
}

// Session holds everything derived from one wallet connection. It is created by
// SessionInteractor.Connect and torn down by SessionInteractor.Close.
type Session struct {
	mu  sync.Mutex
	ctx context.Context

	wallet WalletProvider

	account        common.Address
	connected      bool
	chainId        *big.Int
	correctNetwork bool

	poster PosterHandle
	token  TokenHandle

	snapshot domain.BalanceSnapshot
	posts    []domain.Post

	posting  bool
	checking bool
	reloads  int

	unsubscribe func()
}

func newSession(ctx context.Context, wallet WalletProvider) *Session {
	return &Session{
		ctx:      ctx,
		wallet:   wallet,
		snapshot: domain.EmptySnapshot(),
	}
}

func (s *Session) Account() (common.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account, s.connected
}

func (s *Session) ChainId() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chainId == nil {
		return nil
	}
	return new(big.Int).Set(s.chainId)
}

func (s *Session) IsCorrectNetwork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correctNetwork
}

func (s *Session) Snapshot() domain.BalanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Posts returns the last replayed feed, newest first.
func (s *Session) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.Post, len(s.posts))
	copy(res, s.posts)
	return res
}

func (s *Session) IsPosting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posting
}

func (s *Session) IsChecking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

// Reloads counts the full re-initialisations since the session was created.
func (s *Session) Reloads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloads
}

func (s *Session) handles() (PosterHandle, TokenHandle, common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.poster == nil || s.token == nil {
		return nil, nil, common.Address{}, domain.ErrorNotConnected
	}
	return s.poster, s.token, s.account, nil
}

func (s *Session) setup(account common.Address, chainId *big.Int, correct bool, poster PosterHandle, token TokenHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = account
	s.connected = true
	s.chainId = chainId
	s.correctNetwork = correct
	s.poster = poster
	s.token = token
	s.snapshot = domain.EmptySnapshot()
	s.posts = nil
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = common.Address{}
	s.connected = false
	s.poster = nil
	s.token = nil
	s.snapshot = domain.EmptySnapshot()
	s.posts = nil
}

func (s *Session) setNetwork(chainId *big.Int, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainId = chainId
	s.correctNetwork = correct
}

// setAccount reports whether the account actually changed.
func (s *Session) setAccount(account common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := !s.connected || s.account != account
	s.account = account
	s.connected = s.poster != nil
	if changed {
		s.snapshot = domain.EmptySnapshot()
	}
	return changed
}

func (s *Session) disconnectAccount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = common.Address{}
	s.connected = false
	s.snapshot = domain.EmptySnapshot()
}

// setSnapshot drops results computed for an account that is no longer current.
func (s *Session) setSnapshot(account common.Address, snapshot domain.BalanceSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.account != account {
		return false
	}
	s.snapshot = snapshot
	return true
}

func (s *Session) setPosts(posts []domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

func (s *Session) beginPosting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.posting {
		return false
	}
	s.posting = true
	return true
}

func (s *Session) endPosting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posting = false
}

func (s *Session) setChecking(checking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checking = checking
}

func (s *Session) countReload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
}
