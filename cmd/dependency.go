package cmd

import (
	"context"
	"database/sql"
	"log"
	"time"

	"poster/domain"
	"poster/infrastructure/dbhandler"
	"poster/infrastructure/wallet"
	"poster/interface/contract"
	"poster/interface/exporter"
	"poster/interface/repository"
	"poster/usecase"

	_ "github.com/lib/pq"
)

func defaultDependencyInject(ctx context.Context) {
	var err error

	exporter.Init()

	localWallet, err = wallet.NewLocalWallet(ctx, domain.GetPrivateKey(), domain.GetWalletRpcUrl(), wallet.DialEthclient)
	if err != nil {
		log.Fatal("Unable to connect wallet to rpc endpoint: ", err)
	}

	contractInteractor = usecase.NewContractInteractor(domain.GetPosterAddress(), domain.GetTokenAddress())
	gateInteractor = usecase.NewGateInteractor(domain.GetTokenAddress())
	feedInteractor = usecase.NewFeedInteractor()
	postInteractor = usecase.NewPostInteractor(gateInteractor, feedInteractor)
	diagnosticInteractor = usecase.NewDiagnosticInteractor(domain.GetTokenAddress())
	sessionInteractor = usecase.NewSessionInteractor(localWallet, contractInteractor, domain.GetNetwork(), gateInteractor, feedInteractor)
}

func deployDependencyInject(ctx context.Context) {
	var err error

	dbURI := domain.GetDbUri()
	if dbURI == "" {
		log.Fatal("Deployment needs 'service_db_uri' for its journal.")
	}

	dbPool, err = sql.Open("postgres", dbURI)
	if err != nil {
		log.Fatal(err)
	}
	dbPool.SetMaxOpenConns(5)
	dbPool.SetMaxIdleConns(2)
	dbPool.SetConnMaxIdleTime(1 * time.Minute)
	dbPool.SetConnMaxLifetime(4 * time.Hour)

	dbHandler := dbhandler.DBHandler{DB: dbPool}
	if err = dbHandler.Migrate(ctx); err != nil {
		log.Fatalf("Unable to prepare deployment journal - %v\n", err.Error())
	}
	deploymentRepository := repository.NewDeploymentRepository(dbHandler)

	artifact, err := contract.LoadArtifact(domain.GetPosterArtifact())
	if err != nil {
		log.Fatalf("Unable to load poster artifact - %v\n", err.Error())
	}

	deployer := contract.NewDeployer(localWallet.Backend(), artifact)
	deployInteractor = usecase.NewDeployInteractor(deployer, deploymentRepository, localWallet)
}

var dbPool *sql.DB
var localWallet *wallet.LocalWallet
var contractInteractor *usecase.ContractInteractor
var gateInteractor *usecase.GateInteractor
var feedInteractor *usecase.FeedInteractor
var postInteractor *usecase.PostInteractor
var diagnosticInteractor *usecase.DiagnosticInteractor
var sessionInteractor *usecase.SessionInteractor
var deployInteractor *usecase.DeployInteractor
