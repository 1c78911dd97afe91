package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// NetworkParams is the definition a wallet needs to add a network it does not know yet.
type NetworkParams struct {
	ChainId           *big.Int `json:"-"`
	ChainName         string   `json:"chainName"`
	RpcUrls           []string `json:"rpcUrls"`
	NativeCurrency    Currency `json:"nativeCurrency"`
	BlockExplorerUrls []string `json:"blockExplorerUrls,omitempty"`
}

// ChainIdHex returns the chain id the way wallets exchange it, e.g. "0xaa36a7".
func (p NetworkParams) ChainIdHex() string {
	if p.ChainId == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(p.ChainId)
}

func (p NetworkParams) Matches(chainId *big.Int) bool {
	return p.ChainId != nil && chainId != nil && p.ChainId.Cmp(chainId) == 0
}

// WalletListener receives wallet notifications. Either callback may be nil; no ordering is
// guaranteed between notifications.
type WalletListener struct {
	OnAccountsChanged func(accounts []common.Address)
	OnChainChanged    func(chainId *big.Int)
}
