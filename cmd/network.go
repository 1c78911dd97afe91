package cmd

import (
	"context"
	"fmt"
	"log"

	"poster/domain"

	"github.com/spf13/cobra"
)

// networkCmd represents the network command
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Checks the wallet network and switches to the configured one when needed",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		defaultDependencyInject(ctx)
		defer localWallet.Close()

		network := domain.GetNetwork()
		correct, chainId, err := sessionInteractor.CheckNetwork(ctx)
		if err != nil {
			log.Fatalf("Unable to read wallet network - %v\n", err.Error())
		}
		if correct {
			fmt.Printf("✅ Wallet is on %v (%v)\n", network.ChainName, network.ChainIdHex())
			return
		}

		fmt.Printf("❗️ Wallet is on chain %v, switching to %v\n", chainId, network.ChainName)
		if err = sessionInteractor.SwitchNetwork(ctx); err != nil {
			if domain.IsUserRejected(err) {
				fmt.Printf("⛔️ Request rejected in wallet.\n")
			} else {
				fmt.Printf("❌ Network switch failed: %v\n", err.Error())
			}
			abort(localWallet.Close)
		}
		fmt.Printf("✅ Switched to %v (%v)\n", network.ChainName, network.ChainIdHex())
	},
}

func init() {
	rootCmd.AddCommand(networkCmd)
}
