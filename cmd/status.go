package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the account's token balance against the posting threshold",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		session := connectSession(ctx)
		defer sessionInteractor.Close(session)

		printBalance(session)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
