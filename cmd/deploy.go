package cmd

import (
	"context"
	"fmt"
	"log"

	"poster/domain"
	"poster/usecase"

	"github.com/spf13/cobra"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploys the Poster contract and transfers its ownership",
	Long: `Deploys Poster(deploy_token_address, deploy_threshold) from the compiled artifact and
transfers ownership to deploy_new_owner. Completed steps are journaled in the database,
so running it again only performs what is still missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		defaultDependencyInject(ctx)
		defer localWallet.Close()

		correct, _, err := sessionInteractor.CheckNetwork(ctx)
		if err != nil {
			log.Fatalf("Unable to read wallet network - %v\n", err.Error())
		}
		if !correct {
			if err = sessionInteractor.SwitchNetwork(ctx); err != nil {
				log.Fatalf("Unable to switch to %v - %v\n", domain.GetNetwork().ChainName, err.Error())
			}
		}

		deployDependencyInject(ctx)
		defer dbPool.Close()

		deployment, err := deployInteractor.Deploy(ctx, domain.GetChainId(), usecase.DeployParams{
			TokenAddress: domain.GetDeployTokenAddress(),
			Threshold:    domain.GetDeployThreshold(),
			NewOwner:     domain.GetDeployNewOwner(),
		})
		if err != nil {
			fmt.Printf("❌ Deployment failed: %v\n", err.Error())
			abort(func() { dbPool.Close() }, localWallet.Close)
		}

		fmt.Printf("------------- %v -----------------\n", deployment.Key)
		fmt.Printf("Poster:    %v\n", deployment.PosterAddress.Hex())
		fmt.Printf("Owner:     %v\n", deployment.NewOwner.Hex())
		fmt.Printf("Token:     %v\n", deployment.TokenAddress.Hex())
		fmt.Printf("Threshold: %v\n", deployment.Threshold)
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
}
