package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"poster/domain"
	"poster/interface/contract"
)

type Dialer func(ctx context.Context, rpcUrl string) (Client, error)

// Client is the node connection a wallet is attached to.
type Client interface {
	contract.Backend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// LocalWallet is a wallet provider backed by a private key. It knows a set of networks by
// chain id and is attached to one of them at a time; switching re-dials the endpoint.
type LocalWallet struct {
	mu sync.Mutex

	key      *ecdsa.PrivateKey
	dial     Dialer
	networks map[string]domain.NetworkParams

	client  Client
	chainId *big.Int

	listeners map[int]domain.WalletListener
	nextId    int
}

func DialEthclient(ctx context.Context, rpcUrl string) (Client, error) {
	client, err := ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewLocalWallet attaches to rpcUrl and learns its chain id.
func NewLocalWallet(ctx context.Context, key *ecdsa.PrivateKey, rpcUrl string, dial Dialer) (*LocalWallet, error) {
	if dial == nil {
		dial = DialEthclient
	}

	client, err := dial(ctx, rpcUrl)
	if err != nil {
		return nil, err
	}

	chainId, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	w := &LocalWallet{
		key:       key,
		dial:      dial,
		networks:  make(map[string]domain.NetworkParams),
		client:    client,
		chainId:   chainId,
		listeners: make(map[int]domain.WalletListener),
	}
	w.networks[chainId.String()] = domain.NetworkParams{ChainId: chainId, RpcUrls: []string{rpcUrl}}

	return w, nil
}

func (w *LocalWallet) Address() common.Address {
	return crypto.PubkeyToAddress(w.key.PublicKey)
}

func (w *LocalWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{w.Address()}, nil
}

func (w *LocalWallet) ChainID(ctx context.Context) (*big.Int, error) {
	w.mu.Lock()
	client := w.client
	w.mu.Unlock()

	return client.ChainID(ctx)
}

// SwitchChain re-attaches the wallet to a known network. An unknown chain id fails with
// domain.CodeUnrecognizedChain so the caller can fall back to AddChain.
func (w *LocalWallet) SwitchChain(ctx context.Context, chainId *big.Int) error {
	w.mu.Lock()
	if w.chainId.Cmp(chainId) == 0 {
		w.mu.Unlock()
		return nil
	}
	params, known := w.networks[chainId.String()]
	w.mu.Unlock()

	if !known {
		return &domain.ProviderError{
			Code:    domain.CodeUnrecognizedChain,
			Message: fmt.Sprintf("unrecognized chain id %v", hexChainId(chainId)),
		}
	}

	return w.attach(ctx, params)
}

// AddChain registers a network definition and switches to it.
func (w *LocalWallet) AddChain(ctx context.Context, params domain.NetworkParams) error {
	if params.ChainId == nil || len(params.RpcUrls) == 0 {
		return &domain.ProviderError{Code: domain.CodeInvalidParams, Message: "chain id and rpc url are required"}
	}

	w.mu.Lock()
	w.networks[params.ChainId.String()] = params
	w.mu.Unlock()

	log.Printf("added network %v (%v)\n", params.ChainName, params.ChainIdHex())
	return w.attach(ctx, params)
}

func (w *LocalWallet) attach(ctx context.Context, params domain.NetworkParams) error {
	client, err := w.dial(ctx, params.RpcUrls[0])
	if err != nil {
		return err
	}

	chainId, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return err
	}
	if chainId.Cmp(params.ChainId) != 0 {
		client.Close()
		return &domain.ProviderError{
			Code:    domain.CodeInvalidParams,
			Message: fmt.Sprintf("rpc endpoint reports chain %v, expected %v", hexChainId(chainId), params.ChainIdHex()),
		}
	}

	w.mu.Lock()
	old := w.client
	w.client = client
	w.chainId = chainId
	listeners := w.snapshotListeners()
	w.mu.Unlock()

	old.Close()

	for _, l := range listeners {
		if l.OnChainChanged != nil {
			l.OnChainChanged(new(big.Int).Set(chainId))
		}
	}
	return nil
}

// Disconnect drops the account exposure; listeners see an empty account list.
func (w *LocalWallet) Disconnect() {
	w.mu.Lock()
	listeners := w.snapshotListeners()
	w.mu.Unlock()

	for _, l := range listeners {
		if l.OnAccountsChanged != nil {
			l.OnAccountsChanged(nil)
		}
	}
}

func (w *LocalWallet) Backend() contract.Backend {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.client
}

func (w *LocalWallet) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	w.mu.Lock()
	chainId := w.chainId
	w.mu.Unlock()

	opts, err := bind.NewKeyedTransactorWithChainID(w.key, chainId)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Subscribe registers l and returns the function removing it.
func (w *LocalWallet) Subscribe(l domain.WalletListener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextId
	w.nextId++
	w.listeners[id] = l

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

func (w *LocalWallet) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = make(map[int]domain.WalletListener)
	w.client.Close()
}

func (w *LocalWallet) snapshotListeners() []domain.WalletListener {
	res := make([]domain.WalletListener, 0, len(w.listeners))
	for _, l := range w.listeners {
		res = append(res, l)
	}
	return res
}

func hexChainId(chainId *big.Int) string {
	return domain.NetworkParams{ChainId: chainId}.ChainIdHex()
}
