package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
)

var (
	ErrorEmptyBytecode = fmt.Errorf("artifact has no bytecode")
)

var receiptPollInterval = time.Second

// Artifact is the subset of a compiler artifact needed to deploy: the creation bytecode.
type Artifact struct {
	ContractName string        `json:"contractName"`
	Bytecode     hexutil.Bytes `json:"bytecode"`
}

func LoadArtifact(filePath string) (*Artifact, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{}
	if err := json.Unmarshal(content, artifact); err != nil {
		return nil, fmt.Errorf("parsing artifact %v: %w", filePath, err)
	}
	if len(artifact.Bytecode) == 0 {
		return nil, ErrorEmptyBytecode
	}
	return artifact, nil
}

// Deployer creates Poster instances and performs their one-time setup calls.
type Deployer struct {
	backend  Backend
	artifact *Artifact
}

func NewDeployer(backend Backend, artifact *Artifact) *Deployer {
	return &Deployer{
		backend:  backend,
		artifact: artifact,
	}
}

func (d *Deployer) DeployPoster(opts *bind.TransactOpts, token common.Address, threshold *big.Int) (common.Address, *types.Transaction, error) {
	address, tx, _, err := bind.DeployContract(opts, posterABI, d.artifact.Bytecode, d.backend, token, threshold)
	return address, tx, err
}

// WaitDeployed polls for the receipt of a deployment transaction known only by its hash,
// so a deployment sent by an earlier run can be picked up again. A reverted deployment
// wraps domain.ErrorTransactionReverted.
func (d *Deployer) WaitDeployed(ctx context.Context, txHash common.Hash) (common.Address, error) {
	queryTicker := time.NewTicker(receiptPollInterval)
	defer queryTicker.Stop()

	var receipt *types.Receipt
	for {
		var err error
		receipt, err = d.backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			break
		}
		if !errors.Is(err, ethereum.NotFound) {
			return common.Address{}, err
		}

		select {
		case <-ctx.Done():
			return common.Address{}, ctx.Err()
		case <-queryTicker.C:
		}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, fmt.Errorf("deployment %v: %w", txHash.Hex(), domain.ErrorTransactionReverted)
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, fmt.Errorf("transaction %v did not create a contract", txHash.Hex())
	}

	code, err := d.backend.CodeAt(ctx, receipt.ContractAddress, nil)
	if err != nil {
		return common.Address{}, err
	}
	if len(code) == 0 {
		return common.Address{}, bind.ErrNoCodeAfterDeploy
	}
	return receipt.ContractAddress, nil
}

func (d *Deployer) TransferOwnership(opts *bind.TransactOpts, poster, newOwner common.Address) (*types.Receipt, error) {
	return NewPoster(poster, d.backend).TransferOwnership(opts, newOwner)
}

func (d *Deployer) Owner(ctx context.Context, poster common.Address) (common.Address, error) {
	return NewPoster(poster, d.backend).Owner(ctx)
}
