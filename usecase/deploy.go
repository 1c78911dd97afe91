package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"poster/domain"
	"poster/interface/exporter"
)

var (
	ErrorDeploymentParamsChanged = fmt.Errorf("journaled deployment was made with different parameters")
)

type PosterDeployer interface {
	DeployPoster(opts *bind.TransactOpts, token common.Address, threshold *big.Int) (common.Address, *types.Transaction, error)
	WaitDeployed(ctx context.Context, txHash common.Hash) (common.Address, error)
	TransferOwnership(opts *bind.TransactOpts, poster, newOwner common.Address) (*types.Receipt, error)
	Owner(ctx context.Context, poster common.Address) (common.Address, error)
}

type DeploymentJournal interface {
	Find(key string) (*domain.Deployment, error)
	Upsert(deployment *domain.Deployment) (*domain.Deployment, error)
}

type Signer interface {
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
}

type DeployParams struct {
	TokenAddress common.Address
	Threshold    *big.Int
	NewOwner     common.Address
}

// DeployInteractor instantiates Poster and hands its ownership over, journaling each step
// so that a repeated run only performs what is missing.
type DeployInteractor struct {
	deployer PosterDeployer
	journal  DeploymentJournal
	signer   Signer
}

func NewDeployInteractor(deployer PosterDeployer, journal DeploymentJournal, signer Signer) *DeployInteractor {
	return &DeployInteractor{
		deployer: deployer,
		journal:  journal,
		signer:   signer,
	}
}

func (interactor *DeployInteractor) Deploy(ctx context.Context, chainId *big.Int, params DeployParams) (*domain.Deployment, error) {
	key := domain.DeploymentKey(domain.PosterModuleId, chainId)

	deployment, err := interactor.journal.Find(key)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 reading deployment journal - %v\n", err.Error())
		return nil, err
	}

	if deployment == nil {
		deployment = &domain.Deployment{
			Key:          key,
			TokenAddress: params.TokenAddress,
			Threshold:    params.Threshold.String(),
			NewOwner:     params.NewOwner,
		}
	} else if deployment.TokenAddress != params.TokenAddress ||
		deployment.Threshold != params.Threshold.String() ||
		deployment.NewOwner != params.NewOwner {
		return deployment, ErrorDeploymentParamsChanged
	}

	if !deployment.IsDeployed() {
		if err = interactor.deploy(ctx, deployment, params); err != nil {
			exporter.IncErrorCount()
			log.Printf("🔴 deploying poster - %v\n", err.Error())
			return deployment, err
		}
	} else {
		log.Printf("poster already deployed at %v\n", deployment.PosterAddress.Hex())
	}

	if !deployment.IsOwnershipTransferred() {
		if err = interactor.transferOwnership(ctx, deployment); err != nil {
			exporter.IncErrorCount()
			log.Printf("🔴 transferring ownership - %v\n", err.Error())
			return deployment, err
		}
	} else {
		log.Printf("ownership already transferred to %v\n", deployment.NewOwner.Hex())
	}

	return deployment, nil
}

func (interactor *DeployInteractor) deploy(ctx context.Context, deployment *domain.Deployment, params DeployParams) error {
	if deployment.IsPending() {
		log.Printf("resuming poster deployment [tx: %v]\n", deployment.DeployTxHash.Hex())
	} else {
		opts, err := interactor.signer.Transactor(ctx)
		if err != nil {
			return err
		}

		_, tx, err := interactor.deployer.DeployPoster(opts, params.TokenAddress, params.Threshold)
		if err != nil {
			return err
		}
		log.Printf("poster deployment sent [tx: %v]\n", tx.Hash().Hex())

		txHash := tx.Hash()
		deployment.DeployTxHash = &txHash
		if err = interactor.record(deployment); err != nil {
			return err
		}
	}

	address, err := interactor.deployer.WaitDeployed(ctx, *deployment.DeployTxHash)
	if errors.Is(err, domain.ErrorTransactionReverted) {
		// the next run sends a new deployment
		deployment.DeployTxHash = nil
		if recErr := interactor.record(deployment); recErr != nil {
			return recErr
		}
		return err
	}
	if err != nil {
		return err
	}

	deployment.PosterAddress = &address
	log.Printf("poster deployed at %v\n", address.Hex())

	return interactor.record(deployment)
}

func (interactor *DeployInteractor) transferOwnership(ctx context.Context, deployment *domain.Deployment) error {
	newOwner := deployment.NewOwner

	owner, err := interactor.deployer.Owner(ctx, *deployment.PosterAddress)
	if err != nil {
		return err
	}

	if owner != newOwner {
		opts, err := interactor.signer.Transactor(ctx)
		if err != nil {
			return err
		}

		receipt, err := interactor.deployer.TransferOwnership(opts, *deployment.PosterAddress, newOwner)
		if err != nil {
			return err
		}
		txHash := receipt.TxHash
		deployment.OwnershipTxHash = &txHash
		log.Printf("ownership transferred to %v [tx: %v]\n", newOwner.Hex(), txHash.Hex())
	} else {
		log.Printf("🟡 poster is already owned by %v, recording it\n", newOwner.Hex())
	}

	deployment.OwnershipMovedTo = &newOwner
	return interactor.record(deployment)
}

func (interactor *DeployInteractor) record(deployment *domain.Deployment) error {
	_, err := interactor.journal.Upsert(deployment)
	if err != nil {
		log.Printf("🔴 writing deployment journal - %v\n", err.Error())
	}
	return err
}
