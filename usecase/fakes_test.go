package usecase

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
	"poster/interface/contract"
)

var (
	userA      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	userB      = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	tokenAddr  = common.HexToAddress("0x96C12162c7DC9FBec711112513E1817cbdF80980")
	posterAddr = common.HexToAddress("0x60349E3B0A05dbd8BE334f67B48e2e58012C02bc")

	sepoliaParams = domain.NetworkParams{
		ChainId:   big.NewInt(domain.SepoliaChainId),
		ChainName: "Sepolia Test Network",
		RpcUrls:   []string{domain.SepoliaRpcUrl},
	}
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

type fakeWallet struct {
	accounts []common.Address
	chainId  *big.Int
	known    map[string]bool

	switchErr error
	added     []domain.NetworkParams

	listeners map[int]domain.WalletListener
	nextId    int
}

func newFakeWallet(chainId int64) *fakeWallet {
	return &fakeWallet{
		accounts:  []common.Address{userA},
		chainId:   big.NewInt(chainId),
		known:     map[string]bool{big.NewInt(chainId).String(): true},
		listeners: map[int]domain.WalletListener{},
	}
}

func (w *fakeWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return w.accounts, nil
}

func (w *fakeWallet) ChainID(ctx context.Context) (*big.Int, error) {
	return w.chainId, nil
}

func (w *fakeWallet) SwitchChain(ctx context.Context, chainId *big.Int) error {
	if w.switchErr != nil {
		return w.switchErr
	}
	if !w.known[chainId.String()] {
		return &domain.ProviderError{Code: domain.CodeUnrecognizedChain, Message: "unknown"}
	}
	w.moveTo(chainId)
	return nil
}

func (w *fakeWallet) AddChain(ctx context.Context, params domain.NetworkParams) error {
	w.added = append(w.added, params)
	w.known[params.ChainId.String()] = true
	w.moveTo(params.ChainId)
	return nil
}

func (w *fakeWallet) Backend() contract.Backend {
	return nil
}

func (w *fakeWallet) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: w.accounts[0], Context: ctx}, nil
}

func (w *fakeWallet) Subscribe(l domain.WalletListener) func() {
	id := w.nextId
	w.nextId++
	w.listeners[id] = l
	return func() { delete(w.listeners, id) }
}

func (w *fakeWallet) moveTo(chainId *big.Int) {
	w.chainId = chainId
	for _, l := range w.listeners {
		if l.OnChainChanged != nil {
			l.OnChainChanged(chainId)
		}
	}
}

func (w *fakeWallet) changeAccounts(accounts []common.Address) {
	w.accounts = accounts
	for _, l := range w.listeners {
		if l.OnAccountsChanged != nil {
			l.OnAccountsChanged(accounts)
		}
	}
}

type postCall struct {
	gasLimit uint64
	content  string
	tag      string
}

// fakePoster behaves like a chain holding one Poster: posts append NewPost events.
type fakePoster struct {
	threshold    *big.Int
	tokenAddress common.Address
	owner        common.Address
	events       []domain.Post

	estimate      uint64
	estimateErr   error
	postErr       error
	thresholdErr  error
	newPostsErr   error
	estimateCalls int
	postCalls     []postCall
	loads         int
}

func (p *fakePoster) Address() common.Address {
	return posterAddr
}

func (p *fakePoster) Threshold(ctx context.Context) (*big.Int, error) {
	return p.threshold, p.thresholdErr
}

func (p *fakePoster) TokenAddress(ctx context.Context) (common.Address, error) {
	return p.tokenAddress, nil
}

func (p *fakePoster) Owner(ctx context.Context) (common.Address, error) {
	return p.owner, nil
}

func (p *fakePoster) EstimatePost(ctx context.Context, from common.Address, content, tag string) (uint64, error) {
	p.estimateCalls++
	return p.estimate, p.estimateErr
}

func (p *fakePoster) Post(opts *bind.TransactOpts, content, tag string) (*types.Receipt, error) {
	p.postCalls = append(p.postCalls, postCall{gasLimit: opts.GasLimit, content: content, tag: tag})
	if p.postErr != nil {
		return nil, p.postErr
	}

	block := uint64(100 + len(p.events))
	txHash := common.BigToHash(big.NewInt(int64(block)))
	p.events = append(p.events, domain.Post{
		User:        opts.From,
		Content:     content,
		Tag:         domain.TagHash(tag),
		TxHash:      txHash,
		BlockNumber: block,
	})
	return &types.Receipt{TxHash: txHash, BlockNumber: new(big.Int).SetUint64(block), Status: types.ReceiptStatusSuccessful}, nil
}

func (p *fakePoster) NewPosts(ctx context.Context, fromBlock uint64, toBlock *uint64) ([]domain.Post, error) {
	p.loads++
	if p.newPostsErr != nil {
		return nil, p.newPostsErr
	}
	res := make([]domain.Post, len(p.events))
	copy(res, p.events)
	return res, nil
}

type fakeToken struct {
	balances    map[common.Address]*big.Int
	decimals    uint8
	decimalsErr error
}

func (t *fakeToken) Address() common.Address {
	return tokenAddr
}

func (t *fakeToken) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	if b, ok := t.balances[owner]; ok {
		return b, nil
	}
	return new(big.Int), nil
}

func (t *fakeToken) Decimals(ctx context.Context) (uint8, error) {
	return t.decimals, t.decimalsErr
}

func (t *fakeToken) Name(ctx context.Context) (string, error) {
	return "Poster Token", nil
}

func (t *fakeToken) Symbol(ctx context.Context) (string, error) {
	return "PST", nil
}

type fakeBinder struct {
	poster *fakePoster
	token  *fakeToken
	binds  int
}

func (b *fakeBinder) Bind(backend contract.Backend) (PosterHandle, TokenHandle) {
	b.binds++
	return b.poster, b.token
}

type fixture struct {
	wallet  *fakeWallet
	binder  *fakeBinder
	poster  *fakePoster
	token   *fakeToken
	gate    *GateInteractor
	feed    *FeedInteractor
	posts   *PostInteractor
	session *SessionInteractor
}

func newFixture(chainId int64) *fixture {
	poster := &fakePoster{
		threshold:    tokens(10),
		tokenAddress: tokenAddr,
		owner:        userB,
		estimate:     40000,
		events: []domain.Post{
			{User: userB, Content: "hello", Tag: domain.TagHash("general"), BlockNumber: 1},
			{User: userB, Content: "breaking", Tag: domain.TagHash("news"), BlockNumber: 2},
			{User: userA, Content: "later", Tag: domain.TagHash("news"), BlockNumber: 2, LogIndex: 1},
		},
	}
	token := &fakeToken{balances: map[common.Address]*big.Int{userA: tokens(15)}, decimals: 18}

	f := &fixture{
		wallet: newFakeWallet(chainId),
		poster: poster,
		token:  token,
		binder: &fakeBinder{poster: poster, token: token},
		gate:   NewGateInteractor(tokenAddr),
		feed:   NewFeedInteractor(),
	}
	f.posts = NewPostInteractor(f.gate, f.feed)
	f.session = NewSessionInteractor(f.wallet, f.binder, sepoliaParams, f.gate, f.feed)
	return f
}

var errBoom = errors.New("boom")
